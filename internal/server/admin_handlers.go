package server

import (
	"time"

	"khabri/internal/middleware"
	"khabri/internal/models"
	"khabri/internal/notifications"
	"khabri/internal/service"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// postFormFields reads the writable post fields out of a multipart form.
// The editor UI always submits multipart so text fields and image files can
// travel together.
func postFormFields(c *fiber.Ctx) service.CreatePostInput {
	featured := c.FormValue("is_featured")
	return service.CreatePostInput{
		Title:          c.FormValue("title"),
		Content:        c.FormValue("content"),
		Category:       c.FormValue("category"),
		IsFeatured:     featured == "true" || featured == "1",
		Tags:           c.FormValue("tags"),
		SEOTitle:       c.FormValue("seo_title"),
		SEODescription: c.FormValue("seo_description"),
		SponsorName:    c.FormValue("sponsor_name"),
		SponsorLink:    c.FormValue("sponsor_link"),
		ExternalLink:   c.FormValue("external_link"),
	}
}

// saveImages stores any uploaded image files and returns their public URLs.
// A missing file field is not an error; the returned URL stays empty.
func (s *Server) saveImages(c *fiber.Ctx) (imageURL, sponsorImage string, err error) {
	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		imageURL, err = s.images.Save(c.UserContext(), "", file)
		if err != nil {
			return "", "", err
		}
	}
	if file, ferr := c.FormFile("sponsor_image"); ferr == nil && file != nil {
		sponsorImage, err = s.images.Save(c.UserContext(), "sponsor", file)
		if err != nil {
			return "", "", err
		}
	}
	return imageURL, sponsorImage, nil
}

// CreatePost publishes a new post
// @Summary Create post
// @Description Creates a post from a multipart form, storing any uploaded images
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	input := postFormFields(c)

	imageURL, sponsorImage, err := s.saveImages(c)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Image upload failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	input.ImageURL = imageURL
	input.SponsorImage = sponsorImage

	post, err := s.postService.CreatePost(c.UserContext(), input)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Post created",
		"post_id", post.ID, "slug", post.Slug)

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "post_created",
		PostID: post.ID,
		Slug:   post.Slug,
		At:     time.Now(),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits an existing post
// @Summary Update post
// @Description Overwrites a post's fields; the slug and counters never change
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	fields := postFormFields(c)
	imageURL, sponsorImage, err := s.saveImages(c)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Image upload failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:         id,
		Title:          fields.Title,
		Content:        fields.Content,
		Category:       fields.Category,
		IsFeatured:     fields.IsFeatured,
		Tags:           fields.Tags,
		SEOTitle:       fields.SEOTitle,
		SEODescription: fields.SEODescription,
		SponsorName:    fields.SponsorName,
		SponsorLink:    fields.SponsorLink,
		ExternalLink:   fields.ExternalLink,
		ImageURL:       imageURL,
		SponsorImage:   sponsorImage,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Post updated", "post_id", post.ID)

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "post_updated",
		PostID: post.ID,
		Slug:   post.Slug,
		At:     time.Now(),
	})

	return c.JSON(post)
}

// DeletePost removes a post and its comments
// @Summary Delete post
// @Description Deletes a post together with all of its comments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Post deleted", "post_id", id)

	s.publishEvent(c.UserContext(), notifications.Event{
		Type:   "post_deleted",
		PostID: id,
		At:     time.Now(),
	})

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// GetDashboardStats returns the admin dashboard payload
// @Summary Dashboard statistics
// @Description Returns every post with its comment count plus sitewide counter totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/stats [get]
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := s.postService.Dashboard(c.UserContext())
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Dashboard query failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(stats)
}

// AdminEvents upgrades the connection and streams content events to the
// admin dashboard. Auth runs in the preceding middleware.
func (s *Server) AdminEvents() fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		if s.hub == nil {
			_ = conn.Close()
			return
		}

		userID, _ := conn.Locals("userID").(uint)
		client, err := s.hub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Warn("Event feed connection rejected",
				"user_id", userID, "error", err)
			_ = conn.Close()
			return
		}
		go client.WritePump()
		client.ReadPump()
	})
}
