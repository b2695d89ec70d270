package domain

// EventType identifies the kind of change pushed to connected dashboards.
type EventType string

const (
	// EventTicketUpdated fires on any ticket mutation (status, assignment,
	// field edit, delete). Dashboards re-query their current filter.
	EventTicketUpdated EventType = "ticket_updated"
	// EventFlagsChanged fires when a user's flag set changes; only that
	// user's flagged view is stale.
	EventFlagsChanged EventType = "flags_changed"
)

// Event is a refresh notification broadcast to connected dashboard clients.
// It intentionally carries identifiers only, not payloads: the client owns
// its FilterSpec and re-runs the aggregation queries itself, which keeps the
// data flow unidirectional.
type Event struct {
	Type     EventType `json:"type"`
	TicketID int64     `json:"ticketId,omitempty"`
	UserID   int64     `json:"userId,omitempty"`
}
