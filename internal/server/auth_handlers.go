package server

import (
	"fmt"
	"strings"
	"time"

	"khabri/internal/middleware"
	"khabri/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the JSON body for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login authenticates an admin and issues a signed token
// @Summary Admin login
// @Description Verifies credentials and returns a signed, expiring JWT
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/admin/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Login lookup failed",
			"username", req.Username, "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Passwords are bcrypt hashes only. Rows still holding plaintext from the
	// old deployment fail here until the rehash tool has been run on them.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "Failed login attempt",
			"username", req.Username, "ip", c.IP())
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Token generation failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Admin logged in",
		"user_id", user.ID, "username", user.Username)

	return c.JSON(LoginResponse{Token: token})
}

func (s *Server) generateToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", userID),
		"username": username,
		"iss":      "khabri-api",
		"aud":      "khabri-admin",
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
