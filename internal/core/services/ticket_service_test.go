package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/mocks"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
	"github.com/opsboard/ticket-health-backend/internal/core/services"
)

func TestTicketService_CreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockBroadcaster := mocks.NewMockEventBroadcaster()

		svc := services.NewTicketService(mockRepo, mockBroadcaster)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).
			Return(&domain.Ticket{ID: 1, Key: "ES-1001", Summary: "Disk alerts firing", Status: domain.StatusOpen}, nil)
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).Return(nil)

		ticket, err := svc.CreateTicket(ctx, domain.TicketParams{
			Key:     "ES-1001",
			Summary: "Disk alerts firing",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), ticket.ID)
		assert.Equal(t, domain.StatusOpen, ticket.Status)
		mockRepo.AssertExpectations(t)
		mockBroadcaster.AssertExpectations(t)
	})

	t.Run("validation error for missing key", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockRepo, nil)

		ticket, err := svc.CreateTicket(ctx, domain.TicketParams{Summary: "No key"})

		assert.Nil(t, ticket)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestTicketService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("resolving stamps the resolution fields", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockBroadcaster := mocks.NewMockEventBroadcaster()

		svc := services.NewTicketService(mockRepo, mockBroadcaster)

		stored := &domain.Ticket{ID: 1, Key: "ES-1001", Summary: "Test", Status: domain.StatusOpen, Created: created}
		mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.Status == domain.StatusResolved && tk.ResolvedAt != nil && tk.TimeToResolveHours != nil
		})).Return(stored, nil)
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).Return(nil)

		_, err := svc.UpdateStatus(ctx, 1, domain.StatusResolved)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrTicketNotFound)

		ticket, err := svc.UpdateStatus(ctx, 99, domain.StatusResolved)

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestTicketService_UpdateTicket(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("nil fields are left untouched", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockBroadcaster := mocks.NewMockEventBroadcaster()

		svc := services.NewTicketService(mockRepo, mockBroadcaster)

		team := "Platform"
		stored := &domain.Ticket{
			ID: 1, Key: "ES-1001", Summary: "Original summary",
			Status: domain.StatusOpen, Team: &team, Created: created,
		}
		mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.Summary == "Updated summary" && tk.Team != nil && *tk.Team == "Platform"
		})).Return(stored, nil)
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).Return(nil)

		summary := "Updated summary"
		_, err := svc.UpdateTicket(ctx, 1, ports.UpdateTicketParams{Summary: &summary})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("status change through partial update keeps bookkeeping", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewTicketService(mockRepo, nil)

		stored := &domain.Ticket{ID: 1, Key: "ES-1001", Summary: "Test", Status: domain.StatusOpen, Created: created}
		mockRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.Status == domain.StatusClosed && tk.ResolvedAt != nil
		})).Return(stored, nil)

		status := domain.StatusClosed
		_, err := svc.UpdateTicket(ctx, 1, ports.UpdateTicketParams{Status: &status})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestTicketService_DeleteTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing ticket", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockBroadcaster := mocks.NewMockEventBroadcaster()

		svc := services.NewTicketService(mockRepo, mockBroadcaster)

		mockRepo.On("Delete", ctx, int64(1)).Return(true, nil)
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Event")).Return(nil)

		deleted, err := svc.DeleteTicket(ctx, 1)

		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("missing ticket reports false without broadcasting", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockBroadcaster := mocks.NewMockEventBroadcaster()

		svc := services.NewTicketService(mockRepo, mockBroadcaster)

		mockRepo.On("Delete", ctx, int64(99)).Return(false, nil)

		deleted, err := svc.DeleteTicket(ctx, 99)

		require.NoError(t, err)
		assert.False(t, deleted)
		mockBroadcaster.AssertNotCalled(t, "Broadcast")
	})
}
