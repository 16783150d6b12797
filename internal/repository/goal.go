package repository

import (
	"context"

	"fittrack/internal/cache"
	"fittrack/internal/models"

	"gorm.io/gorm"
)

// GoalRepository defines the interface for goal data operations
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id uint) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Goal, error)
	ListActive(ctx context.Context, userID uint, limit int) ([]*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, goal *models.Goal) error
}

// goalRepository implements GoalRepository
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	err := r.db.WithContext(ctx).Create(goal).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, goal.UserID)
	}
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, id uint) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Goal, error) {
	var goals []*models.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&goals).Error
	return goals, err
}

// ListActive returns the user's incomplete goals, soonest target date first.
func (r *goalRepository) ListActive(ctx context.Context, userID uint, limit int) ([]*models.Goal, error) {
	var goals []*models.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("target_date ASC").
		Limit(limit).
		Find(&goals).Error
	return goals, err
}

// Update persists the goal's fields, including zero values such as
// completed=false and progress=0.
func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) error {
	err := r.db.WithContext(ctx).Model(goal).
		Select("title", "description", "target_date", "category", "progress", "completed").
		Updates(goal).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, goal.UserID)
	}
	return err
}

func (r *goalRepository) Delete(ctx context.Context, goal *models.Goal) error {
	err := r.db.WithContext(ctx).Delete(&models.Goal{}, goal.ID).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, goal.UserID)
	}
	return err
}
