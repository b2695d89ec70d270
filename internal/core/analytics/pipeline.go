// Package analytics implements the dashboard aggregation pipeline: pure,
// deterministic functions that turn a ticket collection plus a FilterSpec
// into the filtered subset, KPI summary, daily time series, status-by-
// severity cross-tab, and top-team ranking.
//
// Every function is a side-effect-free transform of its inputs and is safe
// to call concurrently. None of them can fail: empty input degrades to
// empty/zero/nil outputs, and divisions are guarded so a missing average is
// reported as nil rather than NaN.
package analytics

import (
	"math"
	"sort"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

// TopTeamsLimit caps the team ranking length.
const TopTeamsLimit = 10

// dateLayout renders calendar-date bucket keys; ISO dates sort
// lexicographically in chronological order.
const dateLayout = "2006-01-02"

// Apply returns the tickets matching the spec, preserving source order.
// No sorting or copying of the tickets themselves is performed; callers
// sort for display if they need an order.
func Apply(tickets []*domain.Ticket, spec domain.FilterSpec) []*domain.Ticket {
	filtered := make([]*domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if spec.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Summarize computes the KPI numbers over an already-filtered ticket set.
//
// TicketsMitigated counts any ticket carrying a mitigated timestamp, even
// when that timestamp falls outside the active date window: mitigation is a
// property of the filtered population, not of the window. OpenTickets counts
// tickets without a resolved timestamp. The average resolve time is the
// arithmetic mean over tickets that have a resolve duration, rounded to two
// decimals, and nil when none do.
func Summarize(tickets []*domain.Ticket) domain.KPISummary {
	summary := domain.KPISummary{TicketsCreated: len(tickets)}

	var totalHours float64
	var resolvedCount int
	for _, t := range tickets {
		if t.IsMitigated() {
			summary.TicketsMitigated++
		}
		if t.IsOpen() {
			summary.OpenTickets++
		}
		if t.TimeToResolveHours != nil {
			totalHours += *t.TimeToResolveHours
			resolvedCount++
		}
	}

	if resolvedCount > 0 {
		avg := round2(totalHours / float64(resolvedCount))
		summary.AvgTimeToResolveHours = &avg
	}

	return summary
}

// DailySeries buckets ticket events by calendar date (UTC). Each ticket
// contributes up to three independent events - creation, mitigation, and
// resolution - and each event increments the counter in the bucket of its
// own date, which may differ from the ticket's creation-date bucket.
// Buckets are emitted only for dates with at least one event, in ascending
// date order.
func DailySeries(tickets []*domain.Ticket) []domain.TimeSeriesPoint {
	type counts struct {
		created, mitigated, resolved int
	}
	buckets := make(map[string]*counts)

	bucket := func(date string) *counts {
		c, ok := buckets[date]
		if !ok {
			c = &counts{}
			buckets[date] = c
		}
		return c
	}

	for _, t := range tickets {
		bucket(t.Created.UTC().Format(dateLayout)).created++
		if t.MitigatedAt != nil {
			bucket(t.MitigatedAt.UTC().Format(dateLayout)).mitigated++
		}
		if t.ResolvedAt != nil {
			bucket(t.ResolvedAt.UTC().Format(dateLayout)).resolved++
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]domain.TimeSeriesPoint, 0, len(dates))
	for _, date := range dates {
		c := buckets[date]
		series = append(series, domain.TimeSeriesPoint{
			Date:      date,
			Created:   c.created,
			Mitigated: c.mitigated,
			Resolved:  c.resolved,
		})
	}
	return series
}

// StatusBySeverity cross-tabulates tickets by status and severity, with
// "Unknown" substituted for a missing severity. Statuses are whatever
// strings occur in the data; one entry is emitted per distinct status, in
// ascending status order so output is stable across runs.
func StatusBySeverity(tickets []*domain.Ticket) []domain.StatusSeverityCount {
	byStatus := make(map[string]map[string]int)
	for _, t := range tickets {
		severities, ok := byStatus[t.Status]
		if !ok {
			severities = make(map[string]int)
			byStatus[t.Status] = severities
		}
		severities[t.SeverityOrUnknown()]++
	}

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	breakdown := make([]domain.StatusSeverityCount, 0, len(statuses))
	for _, status := range statuses {
		breakdown = append(breakdown, domain.StatusSeverityCount{
			Status:         status,
			SeverityCounts: byStatus[status],
		})
	}
	return breakdown
}

// TopTeams counts tickets per team ("Unknown" for tickets without one) and
// returns the top groups sorted by count descending, ties broken by team
// name ascending, truncated to TopTeamsLimit.
func TopTeams(tickets []*domain.Ticket) []domain.TeamCount {
	counts := make(map[string]int)
	for _, t := range tickets {
		counts[t.TeamOrUnknown()]++
	}

	ranking := make([]domain.TeamCount, 0, len(counts))
	for team, count := range counts {
		ranking = append(ranking, domain.TeamCount{Team: team, TicketCount: count})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TicketCount != ranking[j].TicketCount {
			return ranking[i].TicketCount > ranking[j].TicketCount
		}
		return ranking[i].Team < ranking[j].Team
	})

	if len(ranking) > TopTeamsLimit {
		ranking = ranking[:TopTeamsLimit]
	}
	return ranking
}

// BuildOverview filters once and derives every dashboard output from the
// same subset, guaranteeing cross-consistency between widgets: the
// cross-tab cells sum to len(Tickets), the KPI created count equals
// len(Tickets), and so on.
func BuildOverview(tickets []*domain.Ticket, spec domain.FilterSpec) domain.DashboardOverview {
	filtered := Apply(tickets, spec)
	return domain.DashboardOverview{
		Tickets:    filtered,
		KPIs:       Summarize(filtered),
		TimeSeries: DailySeries(filtered),
		Breakdown:  StatusBySeverity(filtered),
		TopTeams:   TopTeams(filtered),
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
