package services

import (
	"context"

	"github.com/opsboard/ticket-health-backend/internal/core/analytics"
	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// DashboardService computes aggregation outputs for the dashboard. The
// store is only asked for a coarse created-at window; the FilterSpec is
// always re-applied in-process by the pipeline, so store-side filtering
// fidelity never affects correctness.
type DashboardService struct {
	ticketRepo ports.TicketRepository
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service.
func NewDashboardService(ticketRepo ports.TicketRepository) ports.DashboardService {
	return &DashboardService{ticketRepo: ticketRepo}
}

// GetOverview returns every dashboard widget's data, all derived from the
// same filtered ticket subset.
func (s *DashboardService) GetOverview(ctx context.Context, spec domain.FilterSpec) (*domain.DashboardOverview, error) {
	tickets, err := s.fetch(ctx, spec)
	if err != nil {
		return nil, err
	}
	overview := analytics.BuildOverview(tickets, spec)
	return &overview, nil
}

// ListTickets returns the filtered ticket list in store order.
func (s *DashboardService) ListTickets(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ticket, error) {
	tickets, err := s.fetch(ctx, spec)
	if err != nil {
		return nil, err
	}
	return analytics.Apply(tickets, spec), nil
}

// GetFilterOptions returns the distinct teams, severities, and statuses
// observed in the data, for populating filter controls.
func (s *DashboardService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	return s.ticketRepo.DistinctValues(ctx)
}

func (s *DashboardService) fetch(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ticket, error) {
	return s.ticketRepo.List(ctx, ports.TicketQuery{
		CreatedFrom: spec.DateStart,
		CreatedTo:   spec.DateEnd,
	})
}
