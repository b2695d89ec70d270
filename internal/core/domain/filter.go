package domain

import "time"

// FilterSpec is an immutable snapshot of the active dashboard filter. A zero
// FilterSpec matches every ticket. Every change produces a new value; the
// aggregation pipeline receives one spec per invocation and never mutates it.
//
// All specified conditions are ANDed together; within a field, multiple
// values are ORed (set membership). A nil/empty set means "no restriction",
// not "match nothing". String comparisons are exact and case-sensitive.
type FilterSpec struct {
	DateStart  *time.Time // inclusive lower bound on Created
	DateEnd    *time.Time // inclusive upper bound on Created (end-of-day)
	Teams      []string
	Severities []string
	Statuses   []string
}

// NewFilterSpec builds a spec from optional date bounds and value sets.
// dateEnd is widened to the last instant of its calendar day so that an
// end date covers the whole day. A start after the end is accepted as-is:
// the spec is legal and simply matches nothing.
func NewFilterSpec(dateStart, dateEnd *time.Time, teams, severities, statuses []string) FilterSpec {
	spec := FilterSpec{
		DateStart:  dateStart,
		Teams:      teams,
		Severities: severities,
		Statuses:   statuses,
	}
	if dateEnd != nil {
		end := EndOfDay(*dateEnd)
		spec.DateEnd = &end
	}
	return spec
}

// EndOfDay returns the last representable instant of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// Matches reports whether the ticket satisfies every specified condition.
// Tickets with a nil team or severity never match a non-empty team or
// severity set.
func (f FilterSpec) Matches(t *Ticket) bool {
	if f.DateStart != nil && t.Created.Before(*f.DateStart) {
		return false
	}
	if f.DateEnd != nil && t.Created.After(*f.DateEnd) {
		return false
	}
	if len(f.Teams) > 0 {
		if t.Team == nil || !contains(f.Teams, *t.Team) {
			return false
		}
	}
	if len(f.Severities) > 0 {
		if t.Severity == nil || !contains(f.Severities, *t.Severity) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, t.Status) {
		return false
	}
	return true
}

// IsZero reports whether the spec imposes no restriction at all.
func (f FilterSpec) IsZero() bool {
	return f.DateStart == nil && f.DateEnd == nil &&
		len(f.Teams) == 0 && len(f.Severities) == 0 && len(f.Statuses) == 0
}

// ParseFilterDate parses an ISO-8601 calendar date ("2006-01-02"). The bool
// result makes the never-throw contract explicit: callers decide what a bad
// value falls back to, typically by logging and keeping the previous value.
func ParseFilterDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
