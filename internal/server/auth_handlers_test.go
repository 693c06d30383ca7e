package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"khabri/internal/config"
	"khabri/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

const testJWTSecret = "unit-test-secret-key-0123456789abcdef"

func newAuthTestServer(userRepo *MockUserRepository) *Server {
	return &Server{
		config:   &config.Config{JWTSecret: testJWTSecret},
		userRepo: userRepo,
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	editor := &models.User{ID: 1, Username: "editor", Password: string(hash)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"username": "editor", "password": "correct-horse"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "editor").Return(editor, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]string{"username": "editor", "password": "wrong"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "editor").Return(editor, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown User",
			body: map[string]string{"username": "ghost", "password": "whatever"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Fields",
			body:           map[string]string{"username": "editor"},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newAuthTestServer(mockRepo)
			app.Post("/api/admin/login", s.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var lr LoginResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
				assert.NotEmpty(t, lr.Token)

				// The issued token must verify against the server secret.
				token, err := jwt.Parse(lr.Token, func(t *jwt.Token) (interface{}, error) {
					return []byte(testJWTSecret), nil
				})
				require.NoError(t, err)
				claims := token.Claims.(jwt.MapClaims)
				assert.Equal(t, "1", claims["sub"])
				assert.Equal(t, "editor", claims["username"])
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	s := newAuthTestServer(new(MockUserRepository))

	newApp := func() *fiber.App {
		app := fiber.New()
		app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
		})
		return app
	}

	validToken, err := s.generateToken(1, "editor")
	require.NoError(t, err)

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	foreignToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	// alg=none tokens must never be accepted.
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		query          string
		expectedStatus int
	}{
		{name: "Valid Bearer Token", header: "Bearer " + validToken, expectedStatus: http.StatusOK},
		{name: "Valid Query Token", query: "?token=" + validToken, expectedStatus: http.StatusOK},
		{name: "No Token", expectedStatus: http.StatusUnauthorized},
		{name: "Expired Token", header: "Bearer " + expiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Secret", header: "Bearer " + foreignToken, expectedStatus: http.StatusUnauthorized},
		{name: "Unsigned Token", header: "Bearer " + noneToken, expectedStatus: http.StatusUnauthorized},
		{name: "Malformed Header", header: "Bearer", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
