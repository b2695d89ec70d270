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

// FlagRepository is the secondary adapter for per-user ticket flags.
type FlagRepository struct {
	pool *pgxpool.Pool
}

var _ ports.FlagRepository = (*FlagRepository)(nil)

// NewFlagRepository creates a new flag repository.
func NewFlagRepository(pool *pgxpool.Pool) ports.FlagRepository {
	return &FlagRepository{pool: pool}
}

func scanFlag(row pgx.Row) (*domain.Flag, error) {
	var (
		f     domain.Flag
		notes pgtype.Text
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.TicketID, &f.FlaggedAt, &notes); err != nil {
		return nil, err
	}
	if notes.Valid {
		f.Notes = &notes.String
	}
	return &f, nil
}

// Create inserts a flag. The (user_id, ticket_id) unique constraint turns a
// double insert into ErrConflict.
func (r *FlagRepository) Create(ctx context.Context, flag *domain.Flag) (*domain.Flag, error) {
	const query = `
INSERT INTO flags (user_id, ticket_id, flagged_at, notes)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, ticket_id, flagged_at, notes`

	created, err := scanFlag(r.pool.QueryRow(ctx, query,
		flag.UserID, flag.TicketID, flag.FlaggedAt, flag.Notes))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// Get retrieves the user's flag on a ticket.
func (r *FlagRepository) Get(ctx context.Context, userID, ticketID int64) (*domain.Flag, error) {
	const query = `
SELECT id, user_id, ticket_id, flagged_at, notes
FROM flags WHERE user_id = $1 AND ticket_id = $2`

	flag, err := scanFlag(r.pool.QueryRow(ctx, query, userID, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, err
	}
	return flag, nil
}

// Delete removes the user's flag and reports whether one existed.
func (r *FlagRepository) Delete(ctx context.Context, userID, ticketID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM flags WHERE user_id = $1 AND ticket_id = $2`, userID, ticketID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListFlaggedTickets joins the user's flags against their tickets, ordered
// by when they were flagged.
func (r *FlagRepository) ListFlaggedTickets(ctx context.Context, userID int64) ([]domain.FlaggedTicket, error) {
	const query = `
SELECT
	t.id, t.key, t.summary, t.description, t.status, t.priority, t.resolution,
	t.assignee, t.team, t.severity, t.components, t.created, t.updated,
	t.outage_start, t.outage_end, t.mitigated_at, t.resolved_at,
	t.time_to_resolve_hours,
	f.id, f.user_id, f.ticket_id, f.flagged_at, f.notes
FROM flags f
JOIN tickets t ON t.id = f.ticket_id
WHERE f.user_id = $1
ORDER BY f.flagged_at, f.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flagged []domain.FlaggedTicket
	for rows.Next() {
		var (
			t           domain.Ticket
			f           domain.Flag
			team        pgtype.Text
			severity    pgtype.Text
			outageStart pgtype.Timestamptz
			outageEnd   pgtype.Timestamptz
			mitigatedAt pgtype.Timestamptz
			resolvedAt  pgtype.Timestamptz
			resolveHrs  pgtype.Float8
			notes       pgtype.Text
		)

		err := rows.Scan(
			&t.ID, &t.Key, &t.Summary, &t.Description, &t.Status, &t.Priority,
			&t.Resolution, &t.Assignee, &team, &severity, &t.Components,
			&t.Created, &t.Updated, &outageStart, &outageEnd,
			&mitigatedAt, &resolvedAt, &resolveHrs,
			&f.ID, &f.UserID, &f.TicketID, &f.FlaggedAt, &notes,
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
		if notes.Valid {
			f.Notes = &notes.String
		}

		flagged = append(flagged, domain.FlaggedTicket{Ticket: &t, Flag: &f})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return flagged, nil
}

// Exists reports whether the user has flagged the ticket.
func (r *FlagRepository) Exists(ctx context.Context, userID, ticketID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM flags WHERE user_id = $1 AND ticket_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, ticketID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
