package services

import (
	"context"
	"errors"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// FlagService manages per-user follow-up flags on tickets.
type FlagService struct {
	flagRepo    ports.FlagRepository
	ticketRepo  ports.TicketRepository
	broadcaster ports.EventBroadcaster
	now         func() time.Time
}

var _ ports.FlagService = (*FlagService)(nil)

// NewFlagService creates a new flag service.
func NewFlagService(flagRepo ports.FlagRepository, ticketRepo ports.TicketRepository, broadcaster ports.EventBroadcaster) ports.FlagService {
	return &FlagService{
		flagRepo:    flagRepo,
		ticketRepo:  ticketRepo,
		broadcaster: broadcaster,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// FlagTicket flags a ticket for the user. Flagging an already-flagged
// ticket returns the existing flag unchanged; in particular the stored
// notes are not overwritten by the new ones.
func (s *FlagService) FlagTicket(ctx context.Context, userID, ticketID int64, notes *string) (*domain.Flag, error) {
	existing, err := s.flagRepo.Get(ctx, userID, ticketID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrFlagNotFound) {
		return nil, err
	}

	// Flags only ever point at real tickets.
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}

	flag, err := s.flagRepo.Create(ctx, &domain.Flag{
		UserID:    userID,
		TicketID:  ticketID,
		FlaggedAt: s.now(),
		Notes:     notes,
	})
	if err != nil {
		return nil, err
	}

	s.notifyFlagsChanged(userID, ticketID)
	return flag, nil
}

// UnflagTicket removes the user's flag and reports whether one existed.
func (s *FlagService) UnflagTicket(ctx context.Context, userID, ticketID int64) (bool, error) {
	removed, err := s.flagRepo.Delete(ctx, userID, ticketID)
	if err != nil {
		return false, err
	}
	if removed {
		s.notifyFlagsChanged(userID, ticketID)
	}
	return removed, nil
}

// BulkUnflag removes the user's flags on each of the given tickets,
// skipping ids without a flag, and returns how many were removed.
func (s *FlagService) BulkUnflag(ctx context.Context, userID int64, ticketIDs []int64) (int, error) {
	removed := 0
	for _, id := range ticketIDs {
		ok, err := s.flagRepo.Delete(ctx, userID, id)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	if removed > 0 {
		s.notifyFlagsChanged(userID, 0)
	}
	return removed, nil
}

// ListFlagged returns the user's flagged tickets matching the spec. The
// spec applies to the ticket side of the join; the flag timestamps play no
// part in filtering.
func (s *FlagService) ListFlagged(ctx context.Context, userID int64, spec domain.FilterSpec) ([]domain.FlaggedTicket, error) {
	flagged, err := s.flagRepo.ListFlaggedTickets(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FlaggedTicket, 0, len(flagged))
	for _, ft := range flagged {
		if spec.Matches(ft.Ticket) {
			result = append(result, ft)
		}
	}
	return result, nil
}

// IsFlagged reports whether the user has flagged the ticket.
func (s *FlagService) IsFlagged(ctx context.Context, userID, ticketID int64) (bool, error) {
	return s.flagRepo.Exists(ctx, userID, ticketID)
}

func (s *FlagService) notifyFlagsChanged(userID, ticketID int64) {
	if s.broadcaster == nil {
		return
	}
	_ = s.broadcaster.Broadcast(domain.Event{
		Type:     domain.EventFlagsChanged,
		TicketID: ticketID,
		UserID:   userID,
	})
}
