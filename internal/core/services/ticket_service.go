package services

import (
	"context"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// TicketService implements ticket mutations. Every write is a simple
// last-write-wins field mutation; there is no workflow engine and no audit
// trail. Mutations broadcast a refresh event so open dashboards re-query.
type TicketService struct {
	ticketRepo  ports.TicketRepository
	broadcaster ports.EventBroadcaster
	now         func() time.Time
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service.
func NewTicketService(ticketRepo ports.TicketRepository, broadcaster ports.EventBroadcaster) ports.TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		broadcaster: broadcaster,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateTicket validates and persists a new ticket.
func (s *TicketService) CreateTicket(ctx context.Context, params domain.TicketParams) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(params)
	if err != nil {
		return nil, err
	}

	created, err := s.ticketRepo.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifyTicketChanged(created.ID)
	return created, nil
}

// GetTicket retrieves a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

// UpdateStatus changes a ticket's status and maintains the resolved
// timestamp: entering Resolved/Closed stamps it, reopening clears it.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.SetStatus(status, s.now())

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifyTicketChanged(id)
	return updated, nil
}

// UpdateTicket applies a partial update; nil fields are left untouched.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, params ports.UpdateTicketParams) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if params.Summary != nil {
		ticket.Summary = *params.Summary
	}
	if params.Description != nil {
		ticket.Description = *params.Description
	}
	if params.Priority != nil {
		ticket.Priority = *params.Priority
	}
	if params.Resolution != nil {
		ticket.Resolution = *params.Resolution
	}
	if params.Team != nil {
		ticket.Team = params.Team
	}
	if params.Severity != nil {
		ticket.Severity = params.Severity
	}
	if params.Assignee != nil {
		ticket.Assignee = *params.Assignee
	}
	if params.MitigatedAt != nil {
		ticket.MarkMitigated(*params.MitigatedAt)
	}
	if params.ResolvedAt != nil {
		ticket.SetResolvedAt(params.ResolvedAt, now)
	}
	if params.Status != nil {
		ticket.SetStatus(*params.Status, now)
	}
	ticket.Updated = now

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifyTicketChanged(id)
	return updated, nil
}

// AssignTicket sets the assignee; an empty name unassigns.
func (s *TicketService) AssignTicket(ctx context.Context, id int64, assignee string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.Assign(assignee, s.now())

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.notifyTicketChanged(id)
	return updated, nil
}

// DeleteTicket removes a ticket; false means the id did not exist.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.ticketRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.notifyTicketChanged(id)
	}
	return deleted, nil
}

func (s *TicketService) notifyTicketChanged(id int64) {
	if s.broadcaster == nil {
		return
	}
	_ = s.broadcaster.Broadcast(domain.Event{
		Type:     domain.EventTicketUpdated,
		TicketID: id,
	})
}
