package ports

import (
	"context"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

// TicketQuery is the coarse pre-filter a ticket store may apply when
// listing. Fine-grained FilterSpec matching is always re-applied in-process
// by the aggregation pipeline, so correctness never depends on the store
// honoring these bounds; they only shrink the working set.
type TicketQuery struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TicketRepository is the persistence port for tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByKey(ctx context.Context, key string) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// Delete reports whether a row was removed; a missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, query TicketQuery) ([]*domain.Ticket, error)
	// DistinctValues returns the observed teams, severities, and statuses
	// for populating filter controls.
	DistinctValues(ctx context.Context) (*domain.FilterOptions, error)
}

// FlagRepository is the persistence port for per-user ticket flags.
type FlagRepository interface {
	// Create inserts a flag; (user, ticket) uniqueness is the store's
	// responsibility and a violation surfaces as an error.
	Create(ctx context.Context, flag *domain.Flag) (*domain.Flag, error)
	Get(ctx context.Context, userID, ticketID int64) (*domain.Flag, error)
	// Delete reports whether a flag existed and was removed.
	Delete(ctx context.Context, userID, ticketID int64) (bool, error)
	// ListFlaggedTickets joins the user's flags against tickets.
	ListFlaggedTickets(ctx context.Context, userID int64) ([]domain.FlaggedTicket, error)
	Exists(ctx context.Context, userID, ticketID int64) (bool, error)
}

// UserRepository is the persistence port for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
