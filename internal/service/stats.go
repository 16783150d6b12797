// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/repository"
)

// completionStep maps a completed-flag transition to a signed unit step:
// false->true is +1, true->false is -1, no change is 0.
func completionStep(prev, next bool) int {
	switch {
	case !prev && next:
		return 1
	case prev && !next:
		return -1
	default:
		return 0
	}
}

// workoutTransitionDelta is the delta for a workout whose completed flag moves
// from prev to next. The minutes adjustment uses the duration that was in
// effect on the side of the transition that carried them: the new duration
// when completing, the previously stored duration when un-completing.
func workoutTransitionDelta(prev bool, prevDuration int, next bool, nextDuration int) models.StatsDelta {
	switch completionStep(prev, next) {
	case 1:
		return models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: nextDuration}
	case -1:
		return models.StatsDelta{WorkoutsCompleted: -1, TotalMinutes: -prevDuration}
	default:
		return models.StatsDelta{}
	}
}

// workoutCreateDelta is the delta for a newly created workout.
func workoutCreateDelta(w *models.Workout) models.StatsDelta {
	return workoutTransitionDelta(false, 0, w.Completed, w.Duration)
}

// workoutDeleteDelta is the delta for a workout being removed.
func workoutDeleteDelta(w *models.Workout) models.StatsDelta {
	return workoutTransitionDelta(w.Completed, w.Duration, false, 0)
}

// goalTransitionDelta is the delta for a goal whose completed flag moves from
// prev to next.
func goalTransitionDelta(prev, next bool) models.StatsDelta {
	return models.StatsDelta{GoalsAchieved: completionStep(prev, next)}
}

// statsApplier is the single funnel through which every mutation touches the
// stats aggregate. The delta step is best-effort: a failure after the entity
// write succeeded is logged and counted, never surfaced to the caller, and
// never rolled back.
type statsApplier struct {
	profiles repository.ProfileRepository
}

func (s statsApplier) apply(ctx context.Context, userID uint, delta models.StatsDelta, entity string) {
	if delta.IsZero() {
		return
	}

	if err := s.profiles.IncrementStats(ctx, userID, delta); err != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to apply stats delta",
			"error", err,
			"entity", entity,
			"workouts_completed", delta.WorkoutsCompleted,
			"goals_achieved", delta.GoalsAchieved,
			"total_minutes", delta.TotalMinutes,
		)
		observability.StatsDeltaFailures.WithLabelValues(entity).Inc()
		return
	}

	direction := "increment"
	if delta.WorkoutsCompleted < 0 || delta.GoalsAchieved < 0 || delta.TotalMinutes < 0 {
		direction = "decrement"
	}
	observability.StatsDeltasApplied.WithLabelValues(entity, direction).Inc()
}
