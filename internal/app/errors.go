package app

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied credentials do
	// not match. The message is shown to end users and deliberately does
	// not distinguish unknown user from wrong password.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrUsernameAlreadyExists       = errors.New("Username already exists")
	ErrUsernameAndPasswordRequired = errors.New("username and password required")
	ErrMessageRequired             = errors.New("message required")
)
