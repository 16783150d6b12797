package server

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGoals handles GET /api/goals
func (s *Server) GetGoals(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	goals, err := s.goals.List(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goals)
}

// CreateGoal handles POST /api/goals
func (s *Server) CreateGoal(c *fiber.Ctx) error {
	var input service.CreateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	goal, err := s.goals.Create(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetGoal handles GET /api/goals/:id
func (s *Server) GetGoal(c *fiber.Ctx) error {
	id, err := parseID(c, "Goal")
	if err != nil {
		return err
	}

	goal, err := s.goals.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// UpdateGoal handles PUT /api/goals/:id
func (s *Server) UpdateGoal(c *fiber.Ctx) error {
	id, err := parseID(c, "Goal")
	if err != nil {
		return err
	}

	var input service.UpdateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	goal, err := s.goals.Update(c.UserContext(), currentUserID(c), id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// ToggleGoalComplete handles PUT /api/goals/:id/toggle-complete
func (s *Server) ToggleGoalComplete(c *fiber.Ctx) error {
	id, err := parseID(c, "Goal")
	if err != nil {
		return err
	}

	goal, err := s.goals.ToggleComplete(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

// DeleteGoal handles DELETE /api/goals/:id
func (s *Server) DeleteGoal(c *fiber.Ctx) error {
	id, err := parseID(c, "Goal")
	if err != nil {
		return err
	}

	if err := s.goals.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Goal deleted successfully"})
}
