package server

import (
	"strconv"

	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a positive numeric :id path parameter. A malformed
// identifier is reported as NotFound, the same as a missing entity, so
// identifier-shape errors never surface as a 500.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(resource, raw))
	}
	return uint(id), nil
}

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// respondServiceError maps a service-layer error onto the HTTP response.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}
