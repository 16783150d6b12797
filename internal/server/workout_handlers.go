package server

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetWorkouts handles GET /api/workouts
func (s *Server) GetWorkouts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	workouts, err := s.workouts.List(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(workouts)
}

// CreateWorkout handles POST /api/workouts
func (s *Server) CreateWorkout(c *fiber.Ctx) error {
	var input service.CreateWorkoutInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	workout, err := s.workouts.Create(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

// GetWorkout handles GET /api/workouts/:id
func (s *Server) GetWorkout(c *fiber.Ctx) error {
	id, err := parseID(c, "Workout")
	if err != nil {
		return err
	}

	workout, err := s.workouts.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(workout)
}

// UpdateWorkout handles PUT /api/workouts/:id
func (s *Server) UpdateWorkout(c *fiber.Ctx) error {
	id, err := parseID(c, "Workout")
	if err != nil {
		return err
	}

	var input service.UpdateWorkoutInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	workout, err := s.workouts.Update(c.UserContext(), currentUserID(c), id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(workout)
}

// ToggleWorkoutComplete handles PUT /api/workouts/:id/toggle-complete
func (s *Server) ToggleWorkoutComplete(c *fiber.Ctx) error {
	id, err := parseID(c, "Workout")
	if err != nil {
		return err
	}

	workout, err := s.workouts.ToggleComplete(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(workout)
}

// DeleteWorkout handles DELETE /api/workouts/:id
func (s *Server) DeleteWorkout(c *fiber.Ctx) error {
	id, err := parseID(c, "Workout")
	if err != nil {
		return err
	}

	if err := s.workouts.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout deleted successfully"})
}
