package service

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/events"
	"fittrack/internal/models"
	"fittrack/internal/repository"
	"fittrack/internal/validation"

	"gorm.io/gorm"
)

// CreateGoalInput carries the fields for a new goal.
type CreateGoalInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDate  time.Time `json:"targetDate"`
	Category    string    `json:"category"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
}

// UpdateGoalInput carries a partial update; nil fields are left unchanged.
// Progress and Completed may be set independently here: the coupling between
// them is enforced only on the toggle path.
type UpdateGoalInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	Category    *string    `json:"category"`
	Progress    *int       `json:"progress"`
	Completed   *bool      `json:"completed"`
}

// GoalService handles goal business logic
type GoalService interface {
	Create(ctx context.Context, userID uint, input CreateGoalInput) (*models.Goal, error)
	Get(ctx context.Context, userID, id uint) (*models.Goal, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]*models.Goal, error)
	Update(ctx context.Context, userID, id uint, input UpdateGoalInput) (*models.Goal, error)
	ToggleComplete(ctx context.Context, userID, id uint) (*models.Goal, error)
	Delete(ctx context.Context, userID, id uint) error
}

type goalService struct {
	goals     repository.GoalRepository
	stats     statsApplier
	publisher events.Publisher
}

// NewGoalService creates a new goal service
func NewGoalService(goals repository.GoalRepository, profiles repository.ProfileRepository, publisher events.Publisher) GoalService {
	return &goalService{
		goals:     goals,
		stats:     statsApplier{profiles: profiles},
		publisher: publisher,
	}
}

func (s *goalService) Create(ctx context.Context, userID uint, input CreateGoalInput) (*models.Goal, error) {
	if input.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if input.Description == "" {
		return nil, models.NewValidationError("description is required")
	}
	if input.TargetDate.IsZero() {
		return nil, models.NewValidationError("targetDate is required")
	}
	if err := validation.ValidateGoalCategory(input.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateProgress(input.Progress); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Category:    input.Category,
		Progress:    input.Progress,
		Completed:   input.Completed,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, goalTransitionDelta(false, goal.Completed), "goal")
	if goal.Completed {
		s.publishCompletion(ctx, goal)
	}
	return goal, nil
}

func (s *goalService) Get(ctx context.Context, userID, id uint) (*models.Goal, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *goalService) List(ctx context.Context, userID uint, limit, offset int) ([]*models.Goal, error) {
	goals, err := s.goals.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return goals, nil
}

// Update applies a partial update. The delta compares the goal's completed
// flag before the write against the requested value.
func (s *goalService) Update(ctx context.Context, userID, id uint, input UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prevCompleted := goal.Completed

	if input.Title != nil {
		if *input.Title == "" {
			return nil, models.NewValidationError("title is required")
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Category != nil {
		if err := validation.ValidateGoalCategory(*input.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		goal.Category = *input.Category
	}
	if input.Progress != nil {
		if err := validation.ValidateProgress(*input.Progress); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		goal.Progress = *input.Progress
	}
	if input.Completed != nil {
		goal.Completed = *input.Completed
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, goalTransitionDelta(prevCompleted, goal.Completed), "goal")
	if prevCompleted != goal.Completed {
		s.publishCompletion(ctx, goal)
	}

	return goal, nil
}

// ToggleComplete flips the completed flag unconditionally. Completing a goal
// this way forces progress to 100; this is the only place the coupling
// between progress and completed is enforced.
func (s *goalService) ToggleComplete(ctx context.Context, userID, id uint) (*models.Goal, error) {
	goal, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prevCompleted := goal.Completed
	goal.Completed = !goal.Completed
	if goal.Completed {
		goal.Progress = 100
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, goalTransitionDelta(prevCompleted, goal.Completed), "goal")
	s.publishCompletion(ctx, goal)

	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID, id uint) error {
	goal, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.goals.Delete(ctx, goal); err != nil {
		return models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, goalTransitionDelta(goal.Completed, false), "goal")
	return nil
}

func (s *goalService) getOwned(ctx context.Context, userID, id uint) (*models.Goal, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Goal", id)
		}
		return nil, models.NewInternalError(err)
	}
	if goal.UserID != userID {
		return nil, models.NewForbiddenError("You do not have access to this goal")
	}
	return goal, nil
}

func (s *goalService) publishCompletion(ctx context.Context, goal *models.Goal) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishCompletion(ctx, events.CompletionEvent{
		Entity:     events.EntityGoal,
		EntityID:   goal.ID,
		UserID:     goal.UserID,
		Completed:  goal.Completed,
		OccurredAt: time.Now().UTC(),
	})
}
