package domain

import "time"

// Flag is a user-specific follow-up marker on a ticket. At most one flag
// exists per (user, ticket) pair; flagging an already-flagged ticket is a
// no-op that returns the existing flag.
type Flag struct {
	ID        int64
	UserID    int64
	TicketID  int64
	FlaggedAt time.Time
	Notes     *string
}

// FlaggedTicket pairs a ticket with the requesting user's flag on it, as
// returned by the flagged-tickets listing and the CSV export.
type FlaggedTicket struct {
	Ticket *Ticket
	Flag   *Flag
}
