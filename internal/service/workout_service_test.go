package service

import (
	"context"
	"testing"
	"time"

	"fittrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockWorkoutRepository is a mock of the WorkoutRepository interface
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *MockWorkoutRepository) GetByID(ctx context.Context, id uint) (*models.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) Recent(ctx context.Context, userID uint, limit int) ([]*models.Workout, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]*models.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) CountCompletedSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkoutRepository) Update(ctx context.Context, workout *models.Workout, replaceExercises bool) error {
	args := m.Called(ctx, workout, replaceExercises)
	return args.Error(0)
}

func (m *MockWorkoutRepository) Delete(ctx context.Context, workout *models.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func newWorkoutServiceForTest(workouts *MockWorkoutRepository, profiles *MockProfileRepository) WorkoutService {
	return NewWorkoutService(workouts, profiles, nil)
}

func storedWorkout(userID uint, completed bool, duration int) *models.Workout {
	return &models.Workout{
		ID:        42,
		UserID:    userID,
		Title:     "Morning Lift",
		Date:      time.Now(),
		Duration:  duration,
		Type:      models.WorkoutTypeStrength,
		Completed: completed,
	}
}

func TestCreateWorkoutCompletedAppliesDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockProfiles.On("IncrementStats", mock.Anything, uint(1),
		models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 45}).Return(nil)

	workout, err := svc.Create(context.Background(), 1, CreateWorkoutInput{
		Title:     "Leg Day",
		Duration:  45,
		Type:      models.WorkoutTypeStrength,
		Completed: true,
	})

	require.NoError(t, err)
	assert.True(t, workout.Completed)
	mockProfiles.AssertExpectations(t)
}

func TestCreateWorkoutIncompleteSkipsDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), 1, CreateWorkoutInput{
		Title:    "Easy Jog",
		Duration: 20,
		Type:     models.WorkoutTypeCardio,
	})

	require.NoError(t, err)
	mockProfiles.AssertNotCalled(t, "IncrementStats")
}

func TestCreateWorkoutValidation(t *testing.T) {
	svc := newWorkoutServiceForTest(new(MockWorkoutRepository), new(MockProfileRepository))

	_, err := svc.Create(context.Background(), 1, CreateWorkoutInput{Type: models.WorkoutTypeCardio})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), 1, CreateWorkoutInput{Title: "X", Type: "Yoga", Duration: 30})
	require.Error(t, err)

	// Zero duration is rejected, matching the schema minimum of 1.
	_, err = svc.Create(context.Background(), 1, CreateWorkoutInput{Title: "X", Type: models.WorkoutTypeCardio})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateWorkoutRejectsInvalidExercises(t *testing.T) {
	svc := newWorkoutServiceForTest(new(MockWorkoutRepository), new(MockProfileRepository))

	tests := []struct {
		name     string
		exercise models.Exercise
	}{
		{"missing name", models.Exercise{Sets: 3, Reps: 10}},
		{"zero sets", models.Exercise{Name: "Squat", Reps: 10}},
		{"zero reps", models.Exercise{Name: "Squat", Sets: 3}},
		{"negative weight", models.Exercise{Name: "Squat", Sets: 3, Reps: 10, Weight: -10}},
		{"negative duration", models.Exercise{Name: "Squat", Sets: 3, Reps: 10, Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, CreateWorkoutInput{
				Title:     "Leg Day",
				Duration:  45,
				Type:      models.WorkoutTypeStrength,
				Exercises: []models.Exercise{tt.exercise},
			})
			require.Error(t, err)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestUpdateWorkoutRejectsInvalidExercises(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, new(MockProfileRepository))

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, false, 30), nil)

	bad := []models.Exercise{{Name: "", Sets: 0, Reps: -3, Weight: -10}}
	_, err := svc.Update(context.Background(), 1, 42, UpdateWorkoutInput{Exercises: &bad})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	mockWorkouts.AssertNotCalled(t, "Update")
}

func TestUpdateWorkoutCompletingAppliesDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, false, 30), nil)
	mockWorkouts.On("Update", mock.Anything, mock.Anything, false).Return(nil)
	mockProfiles.On("IncrementStats", mock.Anything, uint(1),
		models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 30}).Return(nil)

	completed := true
	_, err := svc.Update(context.Background(), 1, 42, UpdateWorkoutInput{Completed: &completed})

	require.NoError(t, err)
	mockProfiles.AssertExpectations(t)
}

func TestUpdateWorkoutUncompletingSubtractsStoredDuration(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, true, 30), nil)
	mockWorkouts.On("Update", mock.Anything, mock.Anything, false).Return(nil)
	mockProfiles.On("IncrementStats", mock.Anything, uint(1),
		models.StatsDelta{WorkoutsCompleted: -1, TotalMinutes: -30}).Return(nil)

	completed := false
	_, err := svc.Update(context.Background(), 1, 42, UpdateWorkoutInput{Completed: &completed})

	require.NoError(t, err)
	mockProfiles.AssertExpectations(t)
}

func TestUpdateWorkoutUnchangedCompletedSkipsDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, true, 30), nil)
	mockWorkouts.On("Update", mock.Anything, mock.Anything, false).Return(nil)

	title := "Evening Lift"
	_, err := svc.Update(context.Background(), 1, 42, UpdateWorkoutInput{Title: &title})

	require.NoError(t, err)
	mockProfiles.AssertNotCalled(t, "IncrementStats")
}

func TestToggleWorkoutCompleteAlwaysAppliesDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, false, 25), nil)
	mockWorkouts.On("Update", mock.Anything, mock.Anything, false).Return(nil)
	mockProfiles.On("IncrementStats", mock.Anything, uint(1),
		models.StatsDelta{WorkoutsCompleted: 1, TotalMinutes: 25}).Return(nil)

	workout, err := svc.ToggleComplete(context.Background(), 1, 42)

	require.NoError(t, err)
	assert.True(t, workout.Completed)
	mockProfiles.AssertExpectations(t)
}

func TestDeleteCompletedWorkoutAppliesNegativeDelta(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	mockProfiles := new(MockProfileRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, mockProfiles)

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(1, true, 50), nil)
	mockWorkouts.On("Delete", mock.Anything, mock.Anything).Return(nil)
	mockProfiles.On("IncrementStats", mock.Anything, uint(1),
		models.StatsDelta{WorkoutsCompleted: -1, TotalMinutes: -50}).Return(nil)

	err := svc.Delete(context.Background(), 1, 42)

	require.NoError(t, err)
	mockProfiles.AssertExpectations(t)
}

func TestWorkoutOwnershipEnforced(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, new(MockProfileRepository))

	mockWorkouts.On("GetByID", mock.Anything, uint(42)).Return(storedWorkout(2, false, 30), nil)

	_, err := svc.Get(context.Background(), 1, 42)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestWorkoutNotFound(t *testing.T) {
	mockWorkouts := new(MockWorkoutRepository)
	svc := newWorkoutServiceForTest(mockWorkouts, new(MockProfileRepository))

	mockWorkouts.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 1, 99)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
