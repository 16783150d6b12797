package service

import (
	"context"
	"time"

	"fittrack/internal/cache"
	"fittrack/internal/models"
	"fittrack/internal/repository"
)

// Fixed calories-per-minute approximation used for the dashboard display
// value. Not a physiological model.
const caloriesPerMinute = 5

const (
	recentWorkoutLimit = 3
	activeGoalLimit    = 5
	weekWindow         = 7 * 24 * time.Hour
)

// DashboardStats is the headline numbers block of the dashboard payload.
// WorkoutsThisWeek is windowed and recomputed; the other three derive from
// the cumulative stats aggregate.
type DashboardStats struct {
	WorkoutsThisWeek int64 `json:"workoutsThisWeek"`
	CompletedGoals   int   `json:"completedGoals"`
	StreakDays       int   `json:"streakDays"`
	CaloriesBurned   int   `json:"caloriesBurned"`
}

// Dashboard is the composed view returned by the dashboard endpoint.
type Dashboard struct {
	RecentActivities []*models.Workout `json:"recentActivities"`
	Goals            []*models.Goal    `json:"goals"`
	Stats            DashboardStats    `json:"stats"`
}

// DashboardService composes the dashboard view
type DashboardService interface {
	Get(ctx context.Context, userID uint) (*Dashboard, error)
}

type dashboardService struct {
	workouts repository.WorkoutRepository
	goals    repository.GoalRepository
	profiles repository.ProfileRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(workouts repository.WorkoutRepository, goals repository.GoalRepository, profiles repository.ProfileRepository) DashboardService {
	return &dashboardService{workouts: workouts, goals: goals, profiles: profiles}
}

// Get builds the dashboard. workoutsThisWeek is always a live windowed count;
// only cumulative unbounded-history counts come from the stats aggregate. A
// missing profile yields zero-valued stats rather than an error.
func (s *dashboardService) Get(ctx context.Context, userID uint) (*Dashboard, error) {
	var dashboard Dashboard
	err := cache.Aside(ctx, cache.DashboardKey(userID), &dashboard, cache.DashboardTTL, func() error {
		built, err := s.build(ctx, userID)
		if err != nil {
			return err
		}
		dashboard = *built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *dashboardService) build(ctx context.Context, userID uint) (*Dashboard, error) {
	recent, err := s.workouts.Recent(ctx, userID, recentWorkoutLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	active, err := s.goals.ListActive(ctx, userID, activeGoalLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	thisWeek, err := s.workouts.CountCompletedSince(ctx, userID, time.Now().Add(-weekWindow))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var stats models.Stats
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile != nil {
		stats = profile.Stats
	}

	if recent == nil {
		recent = []*models.Workout{}
	}
	if active == nil {
		active = []*models.Goal{}
	}

	return &Dashboard{
		RecentActivities: recent,
		Goals:            active,
		Stats: DashboardStats{
			WorkoutsThisWeek: thisWeek,
			CompletedGoals:   stats.GoalsAchieved,
			StreakDays:       stats.LongestStreak,
			CaloriesBurned:   stats.TotalMinutes * caloriesPerMinute,
		},
	}, nil
}
