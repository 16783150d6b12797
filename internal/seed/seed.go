package seed

import (
	"log"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes every seeded record. Child tables first to keep foreign
// keys happy on databases without cascading deletes.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Exercise{},
		&models.Workout{},
		&models.Goal{},
		&models.Profile{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	log.Println("Database cleared")
	return nil
}

// SeedUsers creates numUsers users, each with a spread of workouts and goals
// and a profile whose stats match the seeded entities.
func (s *Seeder) SeedUsers(numUsers, workoutsPerUser, goalsPerUser int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)

	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}

		workouts := make([]*models.Workout, 0, workoutsPerUser)
		for j := 0; j < workoutsPerUser; j++ {
			workout, err := s.factory.CreateWorkout(user, 60)
			if err != nil {
				return nil, err
			}
			workouts = append(workouts, workout)
		}

		goals := make([]*models.Goal, 0, goalsPerUser)
		for j := 0; j < goalsPerUser; j++ {
			goal, err := s.factory.CreateGoal(user)
			if err != nil {
				return nil, err
			}
			goals = append(goals, goal)
		}

		if _, err := s.factory.CreateProfile(user, workouts, goals); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	log.Printf("Seeded %d users with %d workouts and %d goals each", numUsers, workoutsPerUser, goalsPerUser)
	return users, nil
}
