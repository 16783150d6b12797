package models

import (
	"time"
)

// Workout types.
const (
	WorkoutTypeStrength    = "Strength"
	WorkoutTypeCardio      = "Cardio"
	WorkoutTypeFlexibility = "Flexibility"
	WorkoutTypeHIIT        = "HIIT"
	WorkoutTypeRecovery    = "Recovery"
)

// WorkoutTypes lists every valid workout type.
var WorkoutTypes = []string{
	WorkoutTypeStrength,
	WorkoutTypeCardio,
	WorkoutTypeFlexibility,
	WorkoutTypeHIIT,
	WorkoutTypeRecovery,
}

// IsValidWorkoutType reports whether t is one of the known workout types.
func IsValidWorkoutType(t string) bool {
	for _, wt := range WorkoutTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// Exercise is one entry in a workout's ordered exercise list. Position
// preserves the order the client submitted.
type Exercise struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	WorkoutID uint    `gorm:"index;not null" json:"-"`
	Position  int     `gorm:"not null;default:0" json:"-"`
	Name      string  `gorm:"not null" json:"name"`
	Sets      int     `gorm:"not null" json:"sets"`
	Reps      int     `gorm:"not null" json:"reps"`
	Weight    float64 `gorm:"not null;default:0" json:"weight"`
	Duration  int     `gorm:"not null;default:0" json:"duration"`
	Notes     string  `json:"notes,omitempty"`
}

// Workout is a single logged training session. Duration is in minutes and
// feeds the TotalMinutes aggregate while the workout is completed.
type Workout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"not null" json:"title"`
	Date      time.Time  `gorm:"index;not null" json:"date"`
	Duration  int        `gorm:"not null" json:"duration"`
	Type      string     `gorm:"not null" json:"type"`
	Exercises []Exercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
