package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
)

func seedUserAndTicket(t *testing.T) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	user, err := domain.NewUser("casey", "Casey", "hunter22")
	require.NoError(t, err)
	createdUser, err := NewUserRepository(testPool).Create(ctx, user)
	require.NoError(t, err)

	ticket := newTestTicket(t, "ES-1001")
	createdTicket, err := NewTicketRepository(testPool).Create(ctx, ticket)
	require.NoError(t, err)

	return createdUser.ID, createdTicket.ID
}

func TestFlagRepository_CreateGetDelete(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewFlagRepository(testPool)
	userID, ticketID := seedUserAndTicket(t)

	notes := "follow up after release"
	created, err := repo.Create(ctx, &domain.Flag{
		UserID:    userID,
		TicketID:  ticketID,
		FlaggedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Notes:     &notes,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.Get(ctx, userID, ticketID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)

	exists, err := repo.Exists(ctx, userID, ticketID)
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err := repo.Delete(ctx, userID, ticketID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.Get(ctx, userID, ticketID)
	assert.ErrorIs(t, err, apperrors.ErrFlagNotFound)

	removed, err = repo.Delete(ctx, userID, ticketID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFlagRepository_UniquePerUserAndTicket(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewFlagRepository(testPool)
	userID, ticketID := seedUserAndTicket(t)

	flag := &domain.Flag{UserID: userID, TicketID: ticketID, FlaggedAt: time.Now().UTC()}
	_, err := repo.Create(ctx, flag)
	require.NoError(t, err)

	_, err = repo.Create(ctx, flag)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFlagRepository_ListFlaggedTickets(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewFlagRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	userID, firstTicketID := seedUserAndTicket(t)

	second, err := ticketRepo.Create(ctx, newTestTicket(t, "ES-1002"))
	require.NoError(t, err)

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, &domain.Flag{UserID: userID, TicketID: second.ID, FlaggedAt: base})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Flag{UserID: userID, TicketID: firstTicketID, FlaggedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	flagged, err := repo.ListFlaggedTickets(ctx, userID)
	require.NoError(t, err)
	require.Len(t, flagged, 2)
	// Ordered by flagged_at.
	assert.Equal(t, "ES-1002", flagged[0].Ticket.Key)
	assert.Equal(t, "ES-1001", flagged[1].Ticket.Key)

	// Another user sees nothing.
	other, err := domain.NewUser("riley", "Riley", "hunter22")
	require.NoError(t, err)
	createdOther, err := NewUserRepository(testPool).Create(ctx, other)
	require.NoError(t, err)

	flagged, err = repo.ListFlaggedTickets(ctx, createdOther.ID)
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestFlagRepository_CascadeOnTicketDelete(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewFlagRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	userID, ticketID := seedUserAndTicket(t)

	_, err := repo.Create(ctx, &domain.Flag{UserID: userID, TicketID: ticketID, FlaggedAt: time.Now().UTC()})
	require.NoError(t, err)

	deleted, err := ticketRepo.Delete(ctx, ticketID)
	require.NoError(t, err)
	require.True(t, deleted)

	exists, err := repo.Exists(ctx, userID, ticketID)
	require.NoError(t, err)
	assert.False(t, exists)
}
