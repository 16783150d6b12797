// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"fittrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var exerciseNames = []string{
	"Bench Press", "Squat", "Deadlift", "Overhead Press", "Barbell Row",
	"Pull Up", "Push Up", "Lunge", "Plank", "Bicep Curl",
	"Tricep Extension", "Leg Press", "Lat Pulldown", "Hip Thrust", "Burpee",
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateWorkout constructs and persists a sample workout for the given user,
// dated within the last maxDaysBack days.
func (f *Factory) CreateWorkout(user *models.User, maxDaysBack int, overrides ...func(*models.Workout)) (*models.Workout, error) {
	if maxDaysBack <= 0 {
		maxDaysBack = 60
	}

	workoutType := models.WorkoutTypes[f.rand.Intn(len(models.WorkoutTypes))]

	workout := &models.Workout{
		UserID:    user.ID,
		Title:     fmt.Sprintf("%s Session", workoutType),
		Date:      time.Now().Add(-time.Duration(f.rand.Intn(maxDaysBack*24)) * time.Hour),
		Duration:  15 + f.rand.Intn(90),
		Type:      workoutType,
		Notes:     gofakeit.Sentence(8),
		Completed: f.rand.Intn(100) < 70,
	}

	for i := 0; i < 2+f.rand.Intn(4); i++ {
		workout.Exercises = append(workout.Exercises, models.Exercise{
			Position: i,
			Name:     exerciseNames[f.rand.Intn(len(exerciseNames))],
			Sets:     2 + f.rand.Intn(4),
			Reps:     5 + f.rand.Intn(10),
			Weight:   float64(f.rand.Intn(100)) * 2.5,
		})
	}

	for _, override := range overrides {
		override(workout)
	}

	if err := f.db.Create(workout).Error; err != nil {
		return nil, err
	}
	return workout, nil
}

// CreateGoal constructs and persists a sample goal for the given user.
func (f *Factory) CreateGoal(user *models.User, overrides ...func(*models.Goal)) (*models.Goal, error) {
	completed := f.rand.Intn(100) < 30
	progress := f.rand.Intn(100)
	if completed {
		progress = 100
	}

	goal := &models.Goal{
		UserID:      user.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Sentence(12),
		TargetDate:  time.Now().Add(time.Duration(1+f.rand.Intn(120)) * 24 * time.Hour),
		Category:    models.GoalCategories[f.rand.Intn(len(models.GoalCategories))],
		Progress:    progress,
		Completed:   completed,
	}

	for _, override := range overrides {
		override(goal)
	}

	if err := f.db.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// CreateProfile persists a profile whose stats are recomputed from the user's
// seeded workouts and goals, so the aggregate starts out consistent with the
// entity rows.
func (f *Factory) CreateProfile(user *models.User, workouts []*models.Workout, goals []*models.Goal) (*models.Profile, error) {
	var stats models.Stats
	for _, w := range workouts {
		if w.Completed {
			stats.WorkoutsCompleted++
			stats.TotalMinutes += w.Duration
		}
	}
	for _, g := range goals {
		if g.Completed {
			stats.GoalsAchieved++
		}
	}
	stats.LongestStreak = f.rand.Intn(14)

	profile := &models.Profile{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		JoinDate: user.CreatedAt,
		Stats:    stats,
		Measurements: models.Measurements{
			Weight:           120 + float64(f.rand.Intn(120)),
			Height:           150 + float64(f.rand.Intn(50)),
			RestingHeartRate: 50 + f.rand.Intn(30),
		},
		Preferences: models.Preferences{
			WeightUnit:           models.WeightUnitLbs,
			HeightUnit:           models.HeightUnitCm,
			NotificationsEnabled: true,
		},
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
