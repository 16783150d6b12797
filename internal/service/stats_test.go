package service

import (
	"context"
	"errors"
	"testing"

	"fittrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock of the ProfileRepository interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) IncrementStats(ctx context.Context, userID uint, delta models.StatsDelta) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func TestCompletionStep(t *testing.T) {
	assert.Equal(t, 1, completionStep(false, true))
	assert.Equal(t, -1, completionStep(true, false))
	assert.Equal(t, 0, completionStep(false, false))
	assert.Equal(t, 0, completionStep(true, true))
}

func TestWorkoutTransitionDelta(t *testing.T) {
	tests := []struct {
		name         string
		prev         bool
		prevDuration int
		next         bool
		nextDuration int
		want         models.StatsDelta
	}{
		{
			name: "completing adds one workout and the new duration",
			prev: false, prevDuration: 30, next: true, nextDuration: 45,
			want: models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 45},
		},
		{
			name: "un-completing removes one workout and the stored duration",
			prev: true, prevDuration: 30, next: false, nextDuration: 45,
			want: models.StatsDelta{WorkoutsCompleted: -1, TotalMinutes: -30},
		},
		{
			name: "staying incomplete is a no-op",
			prev: false, prevDuration: 30, next: false, nextDuration: 45,
			want: models.StatsDelta{},
		},
		{
			name: "staying complete is a no-op even when duration changes",
			prev: true, prevDuration: 30, next: true, nextDuration: 45,
			want: models.StatsDelta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workoutTransitionDelta(tt.prev, tt.prevDuration, tt.next, tt.nextDuration)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkoutCreateAndDeleteDeltas(t *testing.T) {
	completed := &models.Workout{Completed: true, Duration: 60}
	incomplete := &models.Workout{Completed: false, Duration: 60}

	assert.Equal(t, models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 60}, workoutCreateDelta(completed))
	assert.True(t, workoutCreateDelta(incomplete).IsZero())

	assert.Equal(t, models.StatsDelta{WorkoutsCompleted: -1, TotalMinutes: -60}, workoutDeleteDelta(completed))
	assert.True(t, workoutDeleteDelta(incomplete).IsZero())
}

func TestGoalTransitionDelta(t *testing.T) {
	assert.Equal(t, models.StatsDelta{GoalsAchieved: 1}, goalTransitionDelta(false, true))
	assert.Equal(t, models.StatsDelta{GoalsAchieved: -1}, goalTransitionDelta(true, false))
	assert.True(t, goalTransitionDelta(true, true).IsZero())
	assert.True(t, goalTransitionDelta(false, false).IsZero())
}

func TestStatsApplierSkipsZeroDelta(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	applier := statsApplier{profiles: mockProfiles}

	applier.apply(context.Background(), 1, models.StatsDelta{}, "workout")

	mockProfiles.AssertNotCalled(t, "IncrementStats")
}

func TestStatsApplierAppliesDelta(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	applier := statsApplier{profiles: mockProfiles}

	delta := models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 30}
	mockProfiles.On("IncrementStats", mock.Anything, uint(7), delta).Return(nil)

	applier.apply(context.Background(), 7, delta, "workout")

	mockProfiles.AssertExpectations(t)
}

func TestStatsApplierSwallowsFailures(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	applier := statsApplier{profiles: mockProfiles}

	delta := models.StatsDelta{GoalsAchieved: -1}
	mockProfiles.On("IncrementStats", mock.Anything, uint(3), delta).Return(errors.New("store down"))

	// Must not panic or propagate; the delta step is best-effort.
	applier.apply(context.Background(), 3, delta, "goal")

	mockProfiles.AssertExpectations(t)
}
