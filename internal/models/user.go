// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Email is unique; the bcrypt password
// hash is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Workouts  []Workout `gorm:"foreignKey:UserID" json:"workouts,omitempty"`
	Goals     []Goal    `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}
