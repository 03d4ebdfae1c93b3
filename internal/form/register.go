package form

import (
	"errors"
	"strings"
)

// ErrIncompleteRegistration is returned when any registration field is blank.
var ErrIncompleteRegistration = errors.New("please fill in all fields")

// Registration is the sign-up form as typed.
type Registration struct {
	Username string
	Email    string
	Password string
}

// RegisterPayload is the body sent to the register endpoint.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateRegistration requires all three fields. Username and email are
// sent trimmed; the password is sent exactly as typed.
func ValidateRegistration(r Registration) (RegisterPayload, error) {
	username := strings.TrimSpace(r.Username)
	email := strings.TrimSpace(r.Email)
	if username == "" || email == "" || strings.TrimSpace(r.Password) == "" {
		return RegisterPayload{}, ErrIncompleteRegistration
	}
	return RegisterPayload{
		Username: username,
		Email:    email,
		Password: r.Password,
	}, nil
}
