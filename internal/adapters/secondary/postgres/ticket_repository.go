package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

const uniqueViolationCode = "23505"

// ticketColumns is the shared select list; scanTicket must stay in sync.
const ticketColumns = `
	id, key, summary, description, status, priority, resolution, assignee,
	team, severity, components, created, updated, outage_start, outage_end,
	mitigated_at, resolved_at, time_to_resolve_hours`

// TicketRepository is the secondary adapter for ticket persistence.
type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		t           domain.Ticket
		team        pgtype.Text
		severity    pgtype.Text
		outageStart pgtype.Timestamptz
		outageEnd   pgtype.Timestamptz
		mitigatedAt pgtype.Timestamptz
		resolvedAt  pgtype.Timestamptz
		resolveHrs  pgtype.Float8
	)

	err := row.Scan(
		&t.ID, &t.Key, &t.Summary, &t.Description, &t.Status, &t.Priority,
		&t.Resolution, &t.Assignee, &team, &severity, &t.Components,
		&t.Created, &t.Updated, &outageStart, &outageEnd,
		&mitigatedAt, &resolvedAt, &resolveHrs,
	)
	if err != nil {
		return nil, err
	}

	if team.Valid {
		t.Team = &team.String
	}
	if severity.Valid {
		t.Severity = &severity.String
	}
	if outageStart.Valid {
		t.OutageStart = &outageStart.Time
	}
	if outageEnd.Valid {
		t.OutageEnd = &outageEnd.Time
	}
	if mitigatedAt.Valid {
		t.MitigatedAt = &mitigatedAt.Time
	}
	if resolvedAt.Valid {
		t.ResolvedAt = &resolvedAt.Time
	}
	if resolveHrs.Valid {
		t.TimeToResolveHours = &resolveHrs.Float64
	}

	return &t, nil
}

// Create persists a new ticket entity.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
INSERT INTO tickets (
	key, summary, description, status, priority, resolution, assignee,
	team, severity, components, created, updated, outage_start, outage_end,
	mitigated_at, resolved_at, time_to_resolve_hours
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.Key, ticket.Summary, ticket.Description, ticket.Status,
		ticket.Priority, ticket.Resolution, ticket.Assignee,
		ticket.Team, ticket.Severity, ticket.Components,
		ticket.Created, ticket.Updated, ticket.OutageStart, ticket.OutageEnd,
		ticket.MitigatedAt, ticket.ResolvedAt, ticket.TimeToResolveHours,
	)

	created, err := scanTicket(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrDuplicateKey
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a single ticket by its ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// GetByKey retrieves a single ticket by its human-readable key.
func (r *TicketRepository) GetByKey(ctx context.Context, key string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE key = $1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// Update persists changes to an existing ticket entity.
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
UPDATE tickets
SET summary = $2, description = $3, status = $4, priority = $5,
	resolution = $6, assignee = $7, team = $8, severity = $9,
	components = $10, updated = $11, outage_start = $12, outage_end = $13,
	mitigated_at = $14, resolved_at = $15, time_to_resolve_hours = $16
WHERE id = $1
RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.ID, ticket.Summary, ticket.Description, ticket.Status,
		ticket.Priority, ticket.Resolution, ticket.Assignee,
		ticket.Team, ticket.Severity, ticket.Components, ticket.Updated,
		ticket.OutageStart, ticket.OutageEnd,
		ticket.MitigatedAt, ticket.ResolvedAt, ticket.TimeToResolveHours,
	)

	updated, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a ticket and reports whether a row existed. Flags on the
// ticket go with it via ON DELETE CASCADE.
func (r *TicketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List retrieves tickets, optionally bounded by created-at. Results come
// back in insertion order so aggregation output is stable.
func (r *TicketRepository) List(ctx context.Context, query ports.TicketQuery) ([]*domain.Ticket, error) {
	sql := `SELECT ` + ticketColumns + ` FROM tickets`
	args := make([]any, 0, 2)

	switch {
	case query.CreatedFrom != nil && query.CreatedTo != nil:
		sql += ` WHERE created >= $1 AND created <= $2`
		args = append(args, *query.CreatedFrom, *query.CreatedTo)
	case query.CreatedFrom != nil:
		sql += ` WHERE created >= $1`
		args = append(args, *query.CreatedFrom)
	case query.CreatedTo != nil:
		sql += ` WHERE created <= $1`
		args = append(args, *query.CreatedTo)
	}
	sql += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

// DistinctValues gathers the observed filter values. NULLs are skipped; the
// dashboard's "Unknown" bucket is an aggregation label, not a filter value.
func (r *TicketRepository) DistinctValues(ctx context.Context) (*domain.FilterOptions, error) {
	options := &domain.FilterOptions{}

	collect := func(query string, dest *[]string) error {
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dest = append(*dest, v)
		}
		return rows.Err()
	}

	if err := collect(`SELECT DISTINCT team FROM tickets WHERE team IS NOT NULL ORDER BY team`, &options.Teams); err != nil {
		return nil, err
	}
	if err := collect(`SELECT DISTINCT severity FROM tickets WHERE severity IS NOT NULL ORDER BY severity`, &options.Severities); err != nil {
		return nil, err
	}
	if err := collect(`SELECT DISTINCT status FROM tickets ORDER BY status`, &options.Statuses); err != nil {
		return nil, err
	}
	return options, nil
}
