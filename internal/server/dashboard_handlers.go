package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := s.dashboard.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dashboard)
}
