package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/mocks"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
	"github.com/opsboard/ticket-health-backend/internal/core/services"
)

func TestDashboardService_GetOverview(t *testing.T) {
	ctx := context.Background()

	platform := "Platform"
	data := "Data"
	high := "High"
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tickets := []*domain.Ticket{
		{ID: 1, Key: "ES-1001", Summary: "A", Status: "Open", Team: &platform, Severity: &high, Created: created},
		{ID: 2, Key: "ES-1002", Summary: "B", Status: "Open", Team: &data, Created: created.AddDate(0, 0, 1)},
	}

	t.Run("spec is re-applied over the fetched set", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewDashboardService(mockRepo)

		// The store returns both tickets; the in-process filter narrows.
		mockRepo.On("List", ctx, mock.AnythingOfType("ports.TicketQuery")).Return(tickets, nil)

		overview, err := svc.GetOverview(ctx, domain.FilterSpec{Teams: []string{"Platform"}})

		require.NoError(t, err)
		require.Len(t, overview.Tickets, 1)
		assert.Equal(t, "ES-1001", overview.Tickets[0].Key)
		assert.Equal(t, 1, overview.KPIs.TicketsCreated)
	})

	t.Run("date bounds are forwarded to the store query", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewDashboardService(mockRepo)

		start := created
		end := domain.EndOfDay(created.AddDate(0, 0, 7))
		spec := domain.FilterSpec{DateStart: &start, DateEnd: &end}

		mockRepo.On("List", ctx, mock.MatchedBy(func(q ports.TicketQuery) bool {
			return q.CreatedFrom != nil && q.CreatedFrom.Equal(start) &&
				q.CreatedTo != nil && q.CreatedTo.Equal(end)
		})).Return(tickets, nil)

		_, err := svc.GetOverview(ctx, spec)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestDashboardService_ListTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("store order is preserved", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		svc := services.NewDashboardService(mockRepo)

		created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		tickets := []*domain.Ticket{
			{ID: 3, Key: "ES-1003", Status: "Open", Created: created},
			{ID: 1, Key: "ES-1001", Status: "Open", Created: created},
			{ID: 2, Key: "ES-1002", Status: "Open", Created: created},
		}
		mockRepo.On("List", ctx, mock.AnythingOfType("ports.TicketQuery")).Return(tickets, nil)

		got, err := svc.ListTickets(ctx, domain.FilterSpec{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(1), got[1].ID)
		assert.Equal(t, int64(2), got[2].ID)
	})
}

func TestDashboardService_GetFilterOptions(t *testing.T) {
	ctx := context.Background()

	mockRepo := mocks.NewMockTicketRepository()
	svc := services.NewDashboardService(mockRepo)

	options := &domain.FilterOptions{
		Teams:      []string{"Data", "Platform"},
		Severities: []string{"Critical", "High", "Low"},
		Statuses:   []string{"Closed", "Open"},
	}
	mockRepo.On("DistinctValues", ctx).Return(options, nil)

	got, err := svc.GetFilterOptions(ctx)

	require.NoError(t, err)
	assert.Equal(t, options, got)
}
