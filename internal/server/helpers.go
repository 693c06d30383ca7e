package server

import (
	"strconv"

	"khabri/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a numeric path parameter. A second return of false means the
// 400 response has already been written.
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, false
	}
	return uint(id), true
}
