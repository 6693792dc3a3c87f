package dto

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ErrValidation marks request payloads that fail field checks.
var ErrValidation = errors.New("validation failed")

// Password bounds accepted at sign-up. bcrypt only hashes the first 72 bytes
// and rejects anything longer.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace and lower-cases the email.
func (r *SignUpRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r SignUpRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength || !utf8.ValidString(r.Password) {
		return invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(r.Password) > MaxPasswordBytes {
		return invalid(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r LoginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return invalid("password is required")
	}
	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("please enter a correct email")
	}
	return nil
}

func invalid(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
