package models

import (
	"time"
)

// Goal categories.
const (
	GoalCategoryStrength    = "Strength"
	GoalCategoryCardio      = "Cardio"
	GoalCategoryFlexibility = "Flexibility"
	GoalCategoryConsistency = "Consistency"
	GoalCategoryNutrition   = "Nutrition"
	GoalCategoryRecovery    = "Recovery"
)

// GoalCategories lists every valid goal category.
var GoalCategories = []string{
	GoalCategoryStrength,
	GoalCategoryCardio,
	GoalCategoryFlexibility,
	GoalCategoryConsistency,
	GoalCategoryNutrition,
	GoalCategoryRecovery,
}

// IsValidGoalCategory reports whether category is one of the known categories.
func IsValidGoalCategory(category string) bool {
	for _, c := range GoalCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Goal is a user-defined fitness goal. Completed and Progress are coupled only
// on the toggle path: completing a goal via toggle forces Progress to 100,
// while a direct update may set them independently.
type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	TargetDate  time.Time `gorm:"not null" json:"targetDate"`
	Category    string    `gorm:"not null" json:"category"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
