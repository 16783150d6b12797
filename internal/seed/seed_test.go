package seed

import (
	"testing"

	"fittrack/internal/database"
	"fittrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedUsersProducesConsistentStats(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	users, err := seeder.SeedUsers(3, 6, 4)
	require.NoError(t, err)
	require.Len(t, users, 3)

	for _, user := range users {
		var workouts []models.Workout
		require.NoError(t, db.Where("user_id = ?", user.ID).Find(&workouts).Error)
		assert.Len(t, workouts, 6)

		var goals []models.Goal
		require.NoError(t, db.Where("user_id = ?", user.ID).Find(&goals).Error)
		assert.Len(t, goals, 4)

		var profile models.Profile
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)

		// The seeded aggregate must match the seeded entities exactly.
		wantWorkouts, wantMinutes, wantGoals := 0, 0, 0
		for _, w := range workouts {
			if w.Completed {
				wantWorkouts++
				wantMinutes += w.Duration
			}
		}
		for _, g := range goals {
			if g.Completed {
				wantGoals++
				assert.Equal(t, 100, g.Progress)
			}
		}

		assert.Equal(t, wantWorkouts, profile.Stats.WorkoutsCompleted)
		assert.Equal(t, wantMinutes, profile.Stats.TotalMinutes)
		assert.Equal(t, wantGoals, profile.Stats.GoalsAchieved)
	}
}

func TestClearAll(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	_, err := seeder.SeedUsers(2, 3, 2)
	require.NoError(t, err)
	require.NoError(t, seeder.ClearAll())

	for _, model := range []any{&models.User{}, &models.Workout{}, &models.Goal{}, &models.Profile{}, &models.Exercise{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}
