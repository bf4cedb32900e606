package store

import (
	"errors"

	"moodmate/pkg/domain"
)

// ErrDuplicateUsername is returned when a username is already taken.
// The schema enforces uniqueness, so concurrent registrations cannot
// both succeed.
var ErrDuplicateUsername = errors.New("username already taken")

// Store defines persistence operations for users and check-ins.
type Store interface {
	// users
	SaveUser(domain.User) error
	GetUserByUsername(username string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// check-ins
	SaveCheckIn(domain.CheckIn) error
	ListCheckInsByUser(userID string) ([]domain.CheckIn, error)
}

// SessionStore issues and validates session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
