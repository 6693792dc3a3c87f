// Package auth issues and verifies bearer tokens for user accounts.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
	"github.com/hongminglow/bookstore-be/internal/storage"
)

// Service signs users up, logs them in and resolves tokens back to users.
type Service struct {
	store  storage.UserStore
	tokens *TokenManager
	cost   int
}

// NewService constructs the service.
func NewService(store storage.UserStore, tokens *TokenManager) *Service {
	return &Service{store: store, tokens: tokens, cost: bcrypt.DefaultCost}
}

// SignUp creates an account and returns a token for it.
func (s *Service) SignUp(ctx context.Context, req dto.SignUpRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most %d bytes", dto.ErrValidation, dto.MaxPasswordBytes)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	return s.tokens.Generate(user)
}

// Login checks the credentials and returns a token for the matching user.
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrUnauthorized
	}
	return s.tokens.Generate(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidID) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
