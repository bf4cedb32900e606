package domain

import "time"

// ExerciseType identifies one of the static self-help exercises.
type ExerciseType string

const (
	ExerciseBreathing    ExerciseType = "breathing"
	ExerciseAffirmations ExerciseType = "affirmations"
	ExerciseHypnosis     ExerciseType = "hypnosis"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CheckIn is one recorded emotional check-in. Records are immutable once
// saved; history queries return them newest first.
type CheckIn struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	MoodScore    float64      `json:"moodScore"`
	Transcript   string       `json:"transcript"`
	ExerciseType ExerciseType `json:"exerciseType,omitempty"`
	AudioKey     string       `json:"-"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Exercise is one entry of the static exercise catalog.
type Exercise struct {
	Type        ExerciseType `json:"type"`
	Title       string       `json:"title"`
	Duration    string       `json:"duration"`
	Description string       `json:"description"`
}
