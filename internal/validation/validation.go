// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"fittrack/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateName checks a user or profile display name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}

	if len(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}

	return nil
}

// ValidateWorkoutType checks the workout type against the known set
func ValidateWorkoutType(t string) error {
	if !models.IsValidWorkoutType(t) {
		return fmt.Errorf("type must be one of: %s", strings.Join(models.WorkoutTypes, ", "))
	}
	return nil
}

// ValidateGoalCategory checks the goal category against the known set
func ValidateGoalCategory(category string) error {
	if !models.IsValidGoalCategory(category) {
		return fmt.Errorf("category must be one of: %s", strings.Join(models.GoalCategories, ", "))
	}
	return nil
}

// ValidateProgress checks a goal progress percentage
func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// ValidateDuration checks a workout duration in minutes
func ValidateDuration(duration int) error {
	if duration < 1 {
		return fmt.Errorf("duration must be at least 1 minute")
	}
	return nil
}

// ValidateExercises checks every entry in a workout's exercise list
func ValidateExercises(exercises []models.Exercise) error {
	for i, ex := range exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return fmt.Errorf("exercise %d: name is required", i+1)
		}
		if ex.Sets < 1 {
			return fmt.Errorf("exercise %d: sets must be at least 1", i+1)
		}
		if ex.Reps < 1 {
			return fmt.Errorf("exercise %d: reps must be at least 1", i+1)
		}
		if ex.Weight < 0 {
			return fmt.Errorf("exercise %d: weight must not be negative", i+1)
		}
		if ex.Duration < 0 {
			return fmt.Errorf("exercise %d: duration must not be negative", i+1)
		}
	}
	return nil
}

// ValidateWeightUnit checks a weight unit preference
func ValidateWeightUnit(unit string) error {
	if unit != models.WeightUnitKg && unit != models.WeightUnitLbs {
		return fmt.Errorf("weightUnit must be %q or %q", models.WeightUnitKg, models.WeightUnitLbs)
	}
	return nil
}

// ValidateHeightUnit checks a height unit preference
func ValidateHeightUnit(unit string) error {
	if unit != models.HeightUnitCm && unit != models.HeightUnitFt {
		return fmt.Errorf("heightUnit must be %q or %q", models.HeightUnitCm, models.HeightUnitFt)
	}
	return nil
}
