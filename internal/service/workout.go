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

// CreateWorkoutInput carries the fields for a new workout.
type CreateWorkoutInput struct {
	Title     string            `json:"title"`
	Date      time.Time         `json:"date"`
	Duration  int               `json:"duration"`
	Type      string            `json:"type"`
	Exercises []models.Exercise `json:"exercises"`
	Notes     string            `json:"notes"`
	Completed bool              `json:"completed"`
}

// UpdateWorkoutInput carries a partial update; nil fields are left unchanged.
type UpdateWorkoutInput struct {
	Title     *string            `json:"title"`
	Date      *time.Time         `json:"date"`
	Duration  *int               `json:"duration"`
	Type      *string            `json:"type"`
	Exercises *[]models.Exercise `json:"exercises"`
	Notes     *string            `json:"notes"`
	Completed *bool              `json:"completed"`
}

// WorkoutService handles workout business logic
type WorkoutService interface {
	Create(ctx context.Context, userID uint, input CreateWorkoutInput) (*models.Workout, error)
	Get(ctx context.Context, userID, id uint) (*models.Workout, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error)
	Update(ctx context.Context, userID, id uint, input UpdateWorkoutInput) (*models.Workout, error)
	ToggleComplete(ctx context.Context, userID, id uint) (*models.Workout, error)
	Delete(ctx context.Context, userID, id uint) error
}

type workoutService struct {
	workouts  repository.WorkoutRepository
	stats     statsApplier
	publisher events.Publisher
}

// NewWorkoutService creates a new workout service
func NewWorkoutService(workouts repository.WorkoutRepository, profiles repository.ProfileRepository, publisher events.Publisher) WorkoutService {
	return &workoutService{
		workouts:  workouts,
		stats:     statsApplier{profiles: profiles},
		publisher: publisher,
	}
}

func (s *workoutService) Create(ctx context.Context, userID uint, input CreateWorkoutInput) (*models.Workout, error) {
	if input.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if err := validation.ValidateWorkoutType(input.Type); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDuration(input.Duration); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateExercises(input.Exercises); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	workout := &models.Workout{
		UserID:    userID,
		Title:     input.Title,
		Date:      date,
		Duration:  input.Duration,
		Type:      input.Type,
		Exercises: input.Exercises,
		Notes:     input.Notes,
		Completed: input.Completed,
	}

	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, workoutCreateDelta(workout), "workout")
	if workout.Completed {
		s.publishCompletion(ctx, workout)
	}
	return workout, nil
}

func (s *workoutService) Get(ctx context.Context, userID, id uint) (*models.Workout, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *workoutService) List(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error) {
	workouts, err := s.workouts.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return workouts, nil
}

// Update applies a partial update. The delta is computed from the workout's
// completed flag before the write against the requested value, so a slow or
// half-applied write can never feed the aggregate a stale reading.
func (s *workoutService) Update(ctx context.Context, userID, id uint, input UpdateWorkoutInput) (*models.Workout, error) {
	workout, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prevCompleted := workout.Completed
	prevDuration := workout.Duration

	if input.Title != nil {
		if *input.Title == "" {
			return nil, models.NewValidationError("title is required")
		}
		workout.Title = *input.Title
	}
	if input.Date != nil {
		workout.Date = *input.Date
	}
	if input.Duration != nil {
		if err := validation.ValidateDuration(*input.Duration); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		workout.Duration = *input.Duration
	}
	if input.Type != nil {
		if err := validation.ValidateWorkoutType(*input.Type); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		workout.Type = *input.Type
	}
	if input.Notes != nil {
		workout.Notes = *input.Notes
	}
	if input.Completed != nil {
		workout.Completed = *input.Completed
	}

	replaceExercises := input.Exercises != nil
	if replaceExercises {
		if err := validation.ValidateExercises(*input.Exercises); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		workout.Exercises = *input.Exercises
	}

	if err := s.workouts.Update(ctx, workout, replaceExercises); err != nil {
		return nil, models.NewInternalError(err)
	}

	delta := workoutTransitionDelta(prevCompleted, prevDuration, workout.Completed, workout.Duration)
	s.stats.apply(ctx, userID, delta, "workout")
	if prevCompleted != workout.Completed {
		s.publishCompletion(ctx, workout)
	}

	return s.getOwned(ctx, userID, id)
}

// ToggleComplete flips the completed flag unconditionally, so the transition
// delta always applies.
func (s *workoutService) ToggleComplete(ctx context.Context, userID, id uint) (*models.Workout, error) {
	workout, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prevCompleted := workout.Completed
	workout.Completed = !workout.Completed

	if err := s.workouts.Update(ctx, workout, false); err != nil {
		return nil, models.NewInternalError(err)
	}

	delta := workoutTransitionDelta(prevCompleted, workout.Duration, workout.Completed, workout.Duration)
	s.stats.apply(ctx, userID, delta, "workout")
	s.publishCompletion(ctx, workout)

	return workout, nil
}

func (s *workoutService) Delete(ctx context.Context, userID, id uint) error {
	workout, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.workouts.Delete(ctx, workout); err != nil {
		return models.NewInternalError(err)
	}

	s.stats.apply(ctx, userID, workoutDeleteDelta(workout), "workout")
	return nil
}

// getOwned fetches a workout and enforces ownership. Missing entities and
// malformed identifiers both surface as NotFound, never as internal errors.
func (s *workoutService) getOwned(ctx context.Context, userID, id uint) (*models.Workout, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Workout", id)
		}
		return nil, models.NewInternalError(err)
	}
	if workout.UserID != userID {
		return nil, models.NewForbiddenError("You do not have access to this workout")
	}
	return workout, nil
}

func (s *workoutService) publishCompletion(ctx context.Context, workout *models.Workout) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishCompletion(ctx, events.CompletionEvent{
		Entity:     events.EntityWorkout,
		EntityID:   workout.ID,
		UserID:     workout.UserID,
		Completed:  workout.Completed,
		OccurredAt: time.Now().UTC(),
	})
}
