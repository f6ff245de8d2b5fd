package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrPasswordMismatch   = errors.New("password fields do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// messages are the client-facing texts for field-level failures.
var messages = map[error]string{
	ErrUsernameTaken:      "A user with that username already exists.",
	ErrEmailTaken:         "Email already exists.",
	ErrPasswordMismatch:   "Password fields didn't match.",
	ErrInvalidCredentials: "No active account found with the given credentials",
}
