package repository

import (
	"context"
	"time"

	"fittrack/internal/cache"
	"fittrack/internal/models"

	"gorm.io/gorm"
)

// WorkoutRepository defines the interface for workout data operations
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id uint) (*models.Workout, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error)
	Recent(ctx context.Context, userID uint, limit int) ([]*models.Workout, error)
	CountCompletedSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	Update(ctx context.Context, workout *models.Workout, replaceExercises bool) error
	Delete(ctx context.Context, workout *models.Workout) error
}

// workoutRepository implements WorkoutRepository
type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	for i := range workout.Exercises {
		workout.Exercises[i].Position = i
	}
	err := r.db.WithContext(ctx).Create(workout).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, workout.UserID)
	}
	return err
}

func (r *workoutRepository) GetByID(ctx context.Context, id uint) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&workout, id).Error
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&workouts).Error
	return workouts, err
}

func (r *workoutRepository) Recent(ctx context.Context, userID uint, limit int) ([]*models.Workout, error) {
	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}

// CountCompletedSince is the live windowed count behind workoutsThisWeek.
// Windowed counts are always recomputed; only unbounded-history counts live
// in the stats aggregate.
func (r *workoutRepository) CountCompletedSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("user_id = ? AND date >= ? AND completed = ?", userID, since, true).
		Count(&count).Error
	return count, err
}

// Update persists the workout's scalar fields, including zero values such as
// completed=false. When replaceExercises is set the exercise list is swapped
// wholesale inside the same transaction.
func (r *workoutRepository) Update(ctx context.Context, workout *models.Workout, replaceExercises bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(workout).
			Select("title", "date", "duration", "type", "notes", "completed").
			Updates(workout).Error; err != nil {
			return err
		}

		if replaceExercises {
			if err := tx.Where("workout_id = ?", workout.ID).Delete(&models.Exercise{}).Error; err != nil {
				return err
			}
			for i := range workout.Exercises {
				workout.Exercises[i].ID = 0
				workout.Exercises[i].WorkoutID = workout.ID
				workout.Exercises[i].Position = i
			}
			if len(workout.Exercises) > 0 {
				if err := tx.Create(&workout.Exercises).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		cache.InvalidateUserViews(ctx, workout.UserID)
	}
	return err
}

func (r *workoutRepository) Delete(ctx context.Context, workout *models.Workout) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workout{}, workout.ID).Error
	})
	if err == nil {
		cache.InvalidateUserViews(ctx, workout.UserID)
	}
	return err
}
