package domain

import (
	"time"

	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
)

// Well-known ticket statuses. The status column is free-form text: imports
// may carry whatever workflow names the source tracker uses, so these
// constants are conveniences for the resolution bookkeeping, not an
// enumeration the domain enforces.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
	StatusBlocked    = "Blocked"
)

// UnknownBucket is the label substituted for a missing team or severity in
// aggregation outputs.
const UnknownBucket = "Unknown"

const (
	MaxSummaryLength     = 255
	MaxDescriptionLength = 10000
)

// Ticket is one incident/issue record as tracked by the dashboard.
//
// Team and Severity are pointers because "not set" and "set to a value"
// behave differently downstream: a nil value never matches a non-empty
// filter set but lands in the "Unknown" bucket of the cross-tab and the
// team ranking.
type Ticket struct {
	ID          int64
	Key         string // human-readable unique key, e.g. "ES-1234"
	Summary     string
	Description string
	Status      string
	Priority    string
	Resolution  string
	Assignee    string
	Team        *string
	Severity    *string
	Components  []string

	Created     time.Time
	Updated     time.Time
	OutageStart *time.Time
	OutageEnd   *time.Time
	MitigatedAt *time.Time
	ResolvedAt  *time.Time

	// TimeToResolveHours is (ResolvedAt - Created) in fractional hours,
	// maintained alongside ResolvedAt. Nil while the ticket is unresolved.
	TimeToResolveHours *float64
}

// TicketParams defines the required input for creating a new ticket.
type TicketParams struct {
	Key         string
	Summary     string
	Description string
	Status      string
	Priority    string
	Assignee    string
	Team        *string
	Severity    *string
	Components  []string
	Created     time.Time
}

// NewTicket is a factory function to create a valid new ticket.
func NewTicket(params TicketParams) (*Ticket, error) {
	errs := apperrors.NewValidationErrors()

	if params.Key == "" {
		errs.Add("key", "Ticket key is required")
	}
	if params.Summary == "" {
		errs.Add("summary", "Summary is required")
	}
	if len(params.Summary) > MaxSummaryLength {
		errs.Add("summary", "Summary exceeds maximum length")
	}
	if len(params.Description) > MaxDescriptionLength {
		errs.Add("description", "Description exceeds maximum length")
	}
	if errs.HasErrors() {
		return nil, errs
	}

	created := params.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}

	status := params.Status
	if status == "" {
		status = StatusOpen
	}

	return &Ticket{
		Key:         params.Key,
		Summary:     params.Summary,
		Description: params.Description,
		Status:      status,
		Priority:    params.Priority,
		Assignee:    params.Assignee,
		Team:        params.Team,
		Severity:    params.Severity,
		Components:  params.Components,
		Created:     created,
		Updated:     created,
	}, nil
}

// IsOpen reports whether the ticket has not yet been resolved.
func (t *Ticket) IsOpen() bool {
	return t.ResolvedAt == nil
}

// IsMitigated reports whether the ticket has ever hit the mitigated
// milestone, regardless of its current status.
func (t *Ticket) IsMitigated() bool {
	return t.MitigatedAt != nil
}

// SetStatus applies a status change and keeps the resolution timestamps
// consistent: moving into Resolved/Closed stamps ResolvedAt (if not already
// set) and computes the resolve duration; reopening clears both.
// Status updates are last-write-wins; there is no transition validation.
func (t *Ticket) SetStatus(status string, now time.Time) {
	t.Status = status
	t.Updated = now

	switch status {
	case StatusResolved, StatusClosed:
		if t.ResolvedAt == nil {
			resolved := now
			t.ResolvedAt = &resolved
			t.recomputeResolveDuration()
		}
	case StatusOpen, StatusInProgress:
		t.ResolvedAt = nil
		t.TimeToResolveHours = nil
	}
}

// Assign sets or clears the ticket assignee. An empty name unassigns.
func (t *Ticket) Assign(assignee string, now time.Time) {
	t.Assignee = assignee
	t.Updated = now
}

// MarkMitigated stamps the mitigation milestone if not already present.
func (t *Ticket) MarkMitigated(at time.Time) {
	if t.MitigatedAt == nil {
		mitigated := at
		t.MitigatedAt = &mitigated
		t.Updated = at
	}
}

// SetResolvedAt overrides the resolution timestamp directly (used by partial
// updates and imports) and recomputes the resolve duration.
func (t *Ticket) SetResolvedAt(at *time.Time, now time.Time) {
	t.ResolvedAt = at
	t.Updated = now
	t.recomputeResolveDuration()
}

func (t *Ticket) recomputeResolveDuration() {
	if t.ResolvedAt == nil {
		t.TimeToResolveHours = nil
		return
	}
	hours := t.ResolvedAt.Sub(t.Created).Hours()
	if hours < 0 {
		hours = 0
	}
	t.TimeToResolveHours = &hours
}

// TeamOrUnknown returns the team label with the Unknown substitution applied.
func (t *Ticket) TeamOrUnknown() string {
	if t.Team == nil || *t.Team == "" {
		return UnknownBucket
	}
	return *t.Team
}

// SeverityOrUnknown returns the severity label with the Unknown substitution
// applied.
func (t *Ticket) SeverityOrUnknown() string {
	if t.Severity == nil || *t.Severity == "" {
		return UnknownBucket
	}
	return *t.Severity
}
