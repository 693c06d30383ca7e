package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"khabri/internal/models"
	"khabri/internal/repository"
	"khabri/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ViewBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementCounter(ctx context.Context, id uint, kind models.CounterKind) error {
	args := m.Called(ctx, id, kind)
	return args.Error(0)
}

func (m *MockPostRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

// newTestServer wires a Server over mock repositories, no Redis, no notifier.
func newTestServer(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *Server {
	s := &Server{postRepo: postRepo, commentRepo: commentRepo}
	s.postService = service.NewPostService(postRepo)
	if commentRepo != nil {
		s.commentService = service.NewCommentService(commentRepo, postRepo)
	}
	return s
}

func TestGetPosts(t *testing.T) {
	t.Run("Passes Filters Through", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockPostRepository)
		s := newTestServer(mockRepo, nil)
		app.Get("/api/posts", s.GetPosts)

		mockRepo.On("List", mock.Anything, repository.PostFilter{
			Category: "Sports",
			Featured: true,
			Query:    "final",
		}).Return([]*models.Post{{ID: 1, Title: "Cup Final"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts?category=Sports&featured=true&q=final", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "Cup Final", posts[0].Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Legacy Search Param Still Works", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockPostRepository)
		s := newTestServer(mockRepo, nil)
		app.Get("/api/posts", s.GetPosts)

		mockRepo.On("List", mock.Anything, repository.PostFilter{Query: "floods"}).
			Return([]*models.Post{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts?search=floods", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Result Is A JSON Array", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockPostRepository)
		s := newTestServer(mockRepo, nil)
		app.Get("/api/posts", s.GetPosts)

		mockRepo.On("List", mock.Anything, repository.PostFilter{}).
			Return([]*models.Post(nil), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, "[]", string(body))
	})
}

func TestGetPostBySlug(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo, nil)
	app.Get("/api/posts/:slug", s.GetPostBySlug)

	t.Run("Returns The Post After Counting The View", func(t *testing.T) {
		mockRepo.On("ViewBySlug", mock.Anything, "bridge-reopens-1700000000").
			Return(&models.Post{ID: 1, Slug: "bridge-reopens-1700000000", Views: 6}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/posts/bridge-reopens-1700000000", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var post models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
		assert.Equal(t, int64(6), post.Views)
	})

	t.Run("Unknown Slug Is 404", func(t *testing.T) {
		mockRepo.On("ViewBySlug", mock.Anything, "missing").
			Return(nil, models.NewNotFoundError("Post", "missing")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockRepo.AssertExpectations(t)
}

func TestRecordInteraction(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo, nil)
	app.Post("/api/posts/:id/:kind", s.RecordInteraction)

	tests := []struct {
		name           string
		path           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Like",
			path: "/api/posts/7/like",
			mockSetup: func() {
				mockRepo.On("IncrementCounter", mock.Anything, uint(7), models.CounterLike).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Share",
			path: "/api/posts/7/share",
			mockSetup: func() {
				mockRepo.On("IncrementCounter", mock.Anything, uint(7), models.CounterShare).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown Kind",
			path:           "/api/posts/7/report",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad ID",
			path:           "/api/posts/abc/like",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Post",
			path: "/api/posts/99/click",
			mockSetup: func() {
				mockRepo.On("IncrementCounter", mock.Anything, uint(99), models.CounterClick).
					Return(models.NewNotFoundError("Post", uint(99))).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	mockRepo.AssertExpectations(t)
}
