package services

import (
	"context"
	"errors"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// AuthService authenticates dashboard users. Users exist so that flags can
// be scoped per person; there is no role model.
type AuthService struct {
	userRepo ports.UserRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service.
func NewAuthService(userRepo ports.UserRepository) ports.AuthService {
	return &AuthService{userRepo: userRepo}
}

// Login verifies credentials and returns the user. Unknown usernames and
// wrong passwords both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, username, displayName, password string) (*domain.User, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user, err := domain.NewUser(username, displayName, password)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Create(ctx, user)
}
