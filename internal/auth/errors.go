package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers bad credentials and every token failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when signing up with an email already in use.
	ErrConflict = errors.New("email already registered")

	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)
)
