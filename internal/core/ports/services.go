package ports

import (
	"context"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

// DashboardService computes everything the dashboard renders from the
// ticket store and one FilterSpec per call.
type DashboardService interface {
	GetOverview(ctx context.Context, spec domain.FilterSpec) (*domain.DashboardOverview, error)
	ListTickets(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ticket, error)
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

// UpdateTicketParams defines the input for a partial ticket update. Nil
// fields are left untouched.
type UpdateTicketParams struct {
	Summary     *string
	Description *string
	Status      *string
	Priority    *string
	Resolution  *string
	Team        *string
	Severity    *string
	Assignee    *string
	MitigatedAt *time.Time
	ResolvedAt  *time.Time
}

// TicketService defines the mutation operations on tickets. Missing tickets
// surface as apperrors.ErrTicketNotFound, except Delete which reports a
// boolean.
type TicketService interface {
	CreateTicket(ctx context.Context, params domain.TicketParams) (*domain.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, id int64, params UpdateTicketParams) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, id int64, assignee string) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, id int64) (bool, error)
}

// FlagService manages per-user follow-up flags.
type FlagService interface {
	// FlagTicket is idempotent: an existing flag is returned unchanged and
	// its notes are not updated.
	FlagTicket(ctx context.Context, userID, ticketID int64, notes *string) (*domain.Flag, error)
	// UnflagTicket reports whether a flag existed and was removed.
	UnflagTicket(ctx context.Context, userID, ticketID int64) (bool, error)
	// BulkUnflag unflags each id independently and returns the count
	// actually removed; ids without a flag are skipped silently.
	BulkUnflag(ctx context.Context, userID int64, ticketIDs []int64) (int, error)
	// ListFlagged applies the spec to the ticket side of the join only.
	ListFlagged(ctx context.Context, userID int64, spec domain.FilterSpec) ([]domain.FlaggedTicket, error)
	IsFlagged(ctx context.Context, userID, ticketID int64) (bool, error)
}

// ExportService renders flagged-ticket exports.
type ExportService interface {
	// ExportFlaggedCSV returns UTF-8 CSV; an empty flag set still yields
	// the header row.
	ExportFlaggedCSV(ctx context.Context, userID int64, spec domain.FilterSpec) ([]byte, error)
}

// AuthService authenticates dashboard users.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Register(ctx context.Context, username, displayName, password string) (*domain.User, error)
}

// EventBroadcaster pushes refresh events to connected dashboard clients.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
