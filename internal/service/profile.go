package service

import (
	"context"

	"fittrack/internal/cache"
	"fittrack/internal/models"
	"fittrack/internal/repository"
	"fittrack/internal/validation"
)

// UpdateProfileInput carries a partial profile update; nil fields are left
// unchanged. Name and email changes are mirrored onto the user record.
type UpdateProfileInput struct {
	Name          *string                  `json:"name"`
	Email         *string                  `json:"email"`
	Measurements  *UpdateMeasurementsInput `json:"measurements"`
	Preferences   *UpdatePreferencesInput  `json:"preferences"`
	LongestStreak *int                     `json:"longestStreak"`
}

// UpdateMeasurementsInput updates individual body measurements.
type UpdateMeasurementsInput struct {
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	RestingHeartRate *int     `json:"restingHeartRate"`
}

// UpdatePreferencesInput updates display and notification preferences.
type UpdatePreferencesInput struct {
	WeightUnit           *string `json:"weightUnit"`
	HeightUnit           *string `json:"heightUnit"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

// ProfileService handles profile business logic
type ProfileService interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, userID uint, input UpdateProfileInput) (*models.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) ProfileService {
	return &profileService{profiles: profiles, users: users}
}

// GetOrCreate returns the user's profile, creating it from the user record on
// first access. The read goes through the cache-aside layer.
func (s *profileService) GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		loaded, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		profile = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *profileService) loadOrCreate(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile != nil {
		return profile, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewNotFoundError("User", userID)
	}

	profile = &models.Profile{
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
	if err := s.profiles.Create(ctx, profile); err != nil {
		// A concurrent first read may have created it already.
		existing, lookupErr := s.profiles.GetByUserID(ctx, userID)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

// Update applies a partial profile update. Stats are not writable here except
// for longestStreak, which is stored as provided and never derived.
func (s *profileService) Update(ctx context.Context, userID uint, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var name, email string
	if input.Name != nil {
		if err := validation.ValidateName(*input.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Name = *input.Name
		name = *input.Name
	}
	if input.Email != nil {
		if err := validation.ValidateEmail(*input.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Email = *input.Email
		email = *input.Email
	}
	if input.LongestStreak != nil {
		if *input.LongestStreak < 0 {
			return nil, models.NewValidationError("longestStreak must not be negative")
		}
		profile.Stats.LongestStreak = *input.LongestStreak
	}

	if m := input.Measurements; m != nil {
		if m.Weight != nil {
			profile.Measurements.Weight = *m.Weight
		}
		if m.Height != nil {
			profile.Measurements.Height = *m.Height
		}
		if m.RestingHeartRate != nil {
			profile.Measurements.RestingHeartRate = *m.RestingHeartRate
		}
	}

	if p := input.Preferences; p != nil {
		if p.WeightUnit != nil {
			if err := validation.ValidateWeightUnit(*p.WeightUnit); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			profile.Preferences.WeightUnit = *p.WeightUnit
		}
		if p.HeightUnit != nil {
			if err := validation.ValidateHeightUnit(*p.HeightUnit); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			profile.Preferences.HeightUnit = *p.HeightUnit
		}
		if p.NotificationsEnabled != nil {
			profile.Preferences.NotificationsEnabled = *p.NotificationsEnabled
		}
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, models.NewInternalError(err)
	}

	// Keep the user row's identity fields in sync with the profile.
	if name != "" || email != "" {
		if err := s.users.UpdateIdentity(ctx, userID, name, email); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return profile, nil
}
