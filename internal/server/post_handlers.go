package server

import (
	"time"

	"khabri/internal/middleware"
	"khabri/internal/models"
	"khabri/internal/notifications"
	"khabri/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetPosts lists published posts, newest first
// @Summary List posts
// @Description Lists posts with optional category, featured and text filters
// @Tags posts
// @Produce json
// @Param category query string false "Category name"
// @Param featured query boolean false "Only featured posts"
// @Param q query string false "Case-insensitive match against title and content"
// @Success 200 {array} models.Post
// @Failure 500 {object} map[string]string
// @Router /api/posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		// The old reader front end sent ?search=.
		query = c.Query("search")
	}

	featured := c.Query("featured")
	filter := repository.PostFilter{
		Category: c.Query("category"),
		Featured: featured == "true" || featured == "1",
		Query:    query,
	}

	posts, err := s.postService.ListPosts(c.UserContext(), filter)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Failed to list posts", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetPostBySlug fetches a single post and counts the read
// @Summary Get post by slug
// @Description Returns one post; every successful call increments its view counter
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/posts/{slug} [get]
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := s.postService.ViewPost(c.UserContext(), slug)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "post_viewed",
		PostID: post.ID,
		Slug:   post.Slug,
		At:     time.Now(),
	})

	return c.JSON(post)
}

// RecordInteraction bumps one of the reader engagement counters
// @Summary Record an interaction
// @Description Increments the like, share or click counter on a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param kind path string true "Interaction kind" Enums(like, share, click)
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id}/{kind} [post]
func (s *Server) RecordInteraction(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	kind := c.Params("kind")

	if err := s.postService.RecordInteraction(c.UserContext(), id, kind); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "interaction",
		PostID: id,
		Kind:   kind,
		At:     time.Now(),
	})

	return c.JSON(fiber.Map{"message": "Interaction recorded"})
}
