package store

import (
	"time"
)

// GORM models used for persistence.
type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type CheckInModel struct {
	ID           string  `gorm:"primaryKey"`
	UserID       string  `gorm:"not null;index"`
	MoodScore    float64 `gorm:"not null"`
	Transcript   string  `gorm:"type:text;not null"`
	ExerciseType string
	AudioKey     string
	Timestamp    time.Time `gorm:"not null;index"`
}
