package domain

// KPISummary holds the headline dashboard numbers computed over one filtered
// ticket set. AvgTimeToResolveHours is nil (not zero) when no ticket in
// scope carries a resolve duration.
type KPISummary struct {
	TicketsCreated        int
	TicketsMitigated      int
	OpenTickets           int
	AvgTimeToResolveHours *float64 // rounded to 2 decimal places
}

// TimeSeriesPoint is one calendar day of event counts. Date is an ISO-8601
// date string, so lexicographic order equals chronological order.
type TimeSeriesPoint struct {
	Date      string
	Created   int
	Mitigated int
	Resolved  int
}

// StatusSeverityCount is one row of the status-by-severity cross-tab: all
// tickets sharing a status, counted per severity label ("Unknown" for
// tickets without one).
type StatusSeverityCount struct {
	Status         string
	SeverityCounts map[string]int
}

// TeamCount is one entry of the team ranking.
type TeamCount struct {
	Team        string
	TicketCount int
}

// DashboardOverview bundles every aggregation output derived from a single
// shared filtered subset, so the widgets on one dashboard render are
// mutually consistent (the cross-tab cells sum to len(Tickets), and so on).
type DashboardOverview struct {
	Tickets    []*Ticket
	KPIs       KPISummary
	TimeSeries []TimeSeriesPoint
	Breakdown  []StatusSeverityCount
	TopTeams   []TeamCount
}

// FilterOptions lists the values available for each filter control, gathered
// from the data itself.
type FilterOptions struct {
	Teams      []string
	Severities []string
	Statuses   []string
}
