package repository

import (
	"context"
	"errors"

	"fittrack/internal/cache"
	"fittrack/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
// IncrementStats is the only mutation path for the stats aggregate: deltas are
// applied as atomic column expressions, never as read-modify-write.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	IncrementStats(ctx context.Context, userID uint, delta models.StatsDelta) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID returns (nil, nil) when the user has no profile yet.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, profile.UserID)
	}
	return err
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Save(profile).Error
	if err == nil {
		cache.InvalidateUserViews(ctx, profile.UserID)
	}
	return err
}

// IncrementStats applies the signed delta to the user's stats columns in a
// single UPDATE with column expressions, so concurrent deltas for the same
// user never lose increments. If the profile row does not exist yet it is
// created from the user record first, then the delta is applied.
func (r *profileRepository) IncrementStats(ctx context.Context, userID uint, delta models.StatsDelta) error {
	if delta.IsZero() {
		return nil
	}

	updates := map[string]any{}
	if delta.WorkoutsCompleted != 0 {
		updates["stats_workouts_completed"] = gorm.Expr("stats_workouts_completed + ?", delta.WorkoutsCompleted)
	}
	if delta.GoalsAchieved != 0 {
		updates["stats_goals_achieved"] = gorm.Expr("stats_goals_achieved + ?", delta.GoalsAchieved)
	}
	if delta.TotalMinutes != 0 {
		updates["stats_total_minutes"] = gorm.Expr("stats_total_minutes + ?", delta.TotalMinutes)
	}

	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		if err := r.createFromUser(ctx, userID); err != nil {
			return err
		}
		res = r.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
	}

	cache.InvalidateUserViews(ctx, userID)
	return nil
}

// createFromUser seeds a zero-stats profile from the user row. A concurrent
// creation losing the unique-index race is fine; the caller retries its update.
func (r *profileRepository) createFromUser(ctx context.Context, userID uint) error {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return err
	}

	profile := &models.Profile{
		UserID:   userID,
		Name:     user.Name,
		Email:    user.Email,
		JoinDate: user.CreatedAt,
		Preferences: models.Preferences{
			WeightUnit:           models.WeightUnitLbs,
			HeightUnit:           models.HeightUnitCm,
			NotificationsEnabled: true,
		},
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		var existing models.Profile
		if lookupErr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; lookupErr == nil {
			return nil
		}
		return err
	}
	return nil
}
