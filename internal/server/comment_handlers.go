package server

import (
	"time"

	"khabri/internal/middleware"
	"khabri/internal/models"
	"khabri/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest is the JSON body for posting a comment.
type CreateCommentRequest struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// GetComments lists the comments on a post, newest first
// @Summary List comments
// @Description Lists the comments on a post, newest first
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), id)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Failed to list comments",
			"post_id", id, "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// CreateComment adds a reader comment to a post
// @Summary Create comment
// @Description Adds a comment to an existing post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param comment body CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), id, req.AuthorName, req.Content)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "comment_created",
		PostID: id,
		At:     time.Now(),
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}
