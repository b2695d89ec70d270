package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/mocks"
	"github.com/opsboard/ticket-health-backend/internal/core/services"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockUsers)

		user, err := domain.NewUser("casey", "Casey", "hunter22")
		require.NoError(t, err)
		user.ID = 1
		mockUsers.On("GetByUsername", ctx, "casey").Return(user, nil)

		got, err := svc.Login(ctx, "casey", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockUsers)

		user, err := domain.NewUser("casey", "Casey", "hunter22")
		require.NoError(t, err)
		mockUsers.On("GetByUsername", ctx, "casey").Return(user, nil)

		got, err := svc.Login(ctx, "casey", "wrong")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockUsers)

		mockUsers.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrUserNotFound)

		got, err := svc.Login(ctx, "ghost", "whatever")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("new user", func(t *testing.T) {
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockUsers)

		mockUsers.On("GetByUsername", ctx, "casey").Return(nil, apperrors.ErrUserNotFound)
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "casey" && u.PasswordHash != "" && u.PasswordHash != "hunter22"
		})).Return(&domain.User{ID: 1, Username: "casey"}, nil)

		got, err := svc.Register(ctx, "casey", "Casey", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		mockUsers.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockUsers := mocks.NewMockUserRepository()
		svc := services.NewAuthService(mockUsers)

		mockUsers.On("GetByUsername", ctx, "casey").Return(&domain.User{ID: 1, Username: "casey"}, nil)

		got, err := svc.Register(ctx, "casey", "Casey", "hunter22")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		mockUsers.AssertNotCalled(t, "Create")
	})
}
