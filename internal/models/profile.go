package models

import (
	"time"
)

// Measurement unit preferences.
const (
	WeightUnitKg  = "kg"
	WeightUnitLbs = "lbs"
	HeightUnitCm  = "cm"
	HeightUnitFt  = "ft"
)

// Stats is the cached per-user aggregate embedded in Profile. It is derived
// state: WorkoutsCompleted/TotalMinutes must track the user's completed
// workouts, GoalsAchieved their completed goals. LongestStreak is stored as
// provided and never derived by any handler.
type Stats struct {
	WorkoutsCompleted int `gorm:"not null;default:0" json:"workoutsCompleted"`
	GoalsAchieved     int `gorm:"not null;default:0" json:"goalsAchieved"`
	LongestStreak     int `gorm:"not null;default:0" json:"longestStreak"`
	TotalMinutes      int `gorm:"not null;default:0" json:"totalMinutes"`
}

// Measurements holds the user's body measurements.
type Measurements struct {
	Weight           float64 `gorm:"not null;default:0" json:"weight"`
	Height           float64 `gorm:"not null;default:0" json:"height"`
	RestingHeartRate int     `gorm:"not null;default:0" json:"restingHeartRate"`
}

// Preferences holds display and notification preferences.
type Preferences struct {
	WeightUnit           string `gorm:"not null;default:lbs" json:"weightUnit"`
	HeightUnit           string `gorm:"not null;default:cm" json:"heightUnit"`
	NotificationsEnabled bool   `gorm:"not null;default:true" json:"notificationsEnabled"`
}

// Profile is the one-to-one companion record of a User. It is created lazily
// on first profile read and seeded from the User row.
type Profile struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"not null" json:"email"`
	JoinDate     time.Time    `json:"joinDate"`
	Stats        Stats        `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Measurements Measurements `gorm:"embedded;embeddedPrefix:measurement_" json:"measurements"`
	Preferences  Preferences  `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// StatsDelta is a signed adjustment applied atomically to the stats columns of
// a profile. A zero delta is a no-op and must not touch the row.
type StatsDelta struct {
	WorkoutsCompleted int
	GoalsAchieved     int
	TotalMinutes      int
}

// IsZero reports whether applying the delta would change nothing.
func (d StatsDelta) IsZero() bool {
	return d.WorkoutsCompleted == 0 && d.GoalsAchieved == 0 && d.TotalMinutes == 0
}
