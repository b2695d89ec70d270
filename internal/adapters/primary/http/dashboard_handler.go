package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// DashboardHandler serves the read side of the dashboard: the aggregated
// overview, the filtered ticket list, and the filter options.
type DashboardHandler struct {
	dashboardService ports.DashboardService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService ports.DashboardService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "dashboard"),
	}
}

// Router sets up a new chi Router for all dashboard routes.
func (h *DashboardHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all dashboard endpoints. The
// single-widget routes serve clients that only need one section; they run
// the same pipeline as /overview so the numbers always agree.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/overview", h.HandleGetOverview)
	r.Get("/kpis", h.HandleGetKPIs)
	r.Get("/timeseries", h.HandleGetTimeSeries)
	r.Get("/breakdown", h.HandleGetBreakdown)
	r.Get("/teams", h.HandleGetTopTeams)
	r.Get("/tickets", h.HandleListTickets)
	r.Get("/filter-options", h.HandleGetFilterOptions)
}

// --- Response DTOs ---

// KPISummaryDTO holds the headline numbers for the current filter.
type KPISummaryDTO struct {
	TicketsCreated        int      `json:"ticketsCreated"`
	TicketsMitigated      int      `json:"ticketsMitigated"`
	OpenTickets           int      `json:"openTickets"`
	AvgTimeToResolveHours *float64 `json:"avgTimeToResolveHours"`
}

// TimeSeriesPointDTO is one calendar day of event counts.
type TimeSeriesPointDTO struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Mitigated int    `json:"mitigated"`
	Resolved  int    `json:"resolved"`
}

// StatusSeverityCountDTO is one row of the status-by-severity cross-tab.
type StatusSeverityCountDTO struct {
	Status         string         `json:"status"`
	SeverityCounts map[string]int `json:"severityCounts"`
}

// TeamCountDTO is one entry of the team ranking.
type TeamCountDTO struct {
	Team        string `json:"team"`
	TicketCount int    `json:"ticketCount"`
}

// OverviewDTO bundles every widget's data for one dashboard render. All
// sections are derived from the same filtered ticket subset.
type OverviewDTO struct {
	Tickets    []TicketDTO              `json:"tickets"`
	KPIs       KPISummaryDTO            `json:"kpis"`
	TimeSeries []TimeSeriesPointDTO     `json:"timeSeries"`
	Breakdown  []StatusSeverityCountDTO `json:"breakdown"`
	TopTeams   []TeamCountDTO           `json:"topTeams"`
}

// FilterOptionsDTO lists the values available for each filter control.
type FilterOptionsDTO struct {
	Teams      []string `json:"teams"`
	Severities []string `json:"severities"`
	Statuses   []string `json:"statuses"`
}

func toOverviewDTO(overview *domain.DashboardOverview) OverviewDTO {
	timeSeries := make([]TimeSeriesPointDTO, 0, len(overview.TimeSeries))
	for _, point := range overview.TimeSeries {
		timeSeries = append(timeSeries, TimeSeriesPointDTO{
			Date:      point.Date,
			Created:   point.Created,
			Mitigated: point.Mitigated,
			Resolved:  point.Resolved,
		})
	}

	breakdown := make([]StatusSeverityCountDTO, 0, len(overview.Breakdown))
	for _, row := range overview.Breakdown {
		breakdown = append(breakdown, StatusSeverityCountDTO{
			Status:         row.Status,
			SeverityCounts: row.SeverityCounts,
		})
	}

	topTeams := make([]TeamCountDTO, 0, len(overview.TopTeams))
	for _, entry := range overview.TopTeams {
		topTeams = append(topTeams, TeamCountDTO{
			Team:        entry.Team,
			TicketCount: entry.TicketCount,
		})
	}

	return OverviewDTO{
		Tickets: toTicketDTOs(overview.Tickets),
		KPIs: KPISummaryDTO{
			TicketsCreated:        overview.KPIs.TicketsCreated,
			TicketsMitigated:      overview.KPIs.TicketsMitigated,
			OpenTickets:           overview.KPIs.OpenTickets,
			AvgTimeToResolveHours: overview.KPIs.AvgTimeToResolveHours,
		},
		TimeSeries: timeSeries,
		Breakdown:  breakdown,
		TopTeams:   topTeams,
	}
}

// --- Handlers ---

// HandleGetOverview handles GET /dashboard/overview
func (h *DashboardHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	spec := parseFilterSpec(r, h.logger)

	overview, err := h.dashboardService.GetOverview(r.Context(), spec)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toOverviewDTO(overview))
}

// HandleGetKPIs handles GET /dashboard/kpis
func (h *DashboardHandler) HandleGetKPIs(w http.ResponseWriter, r *http.Request) {
	overview, ok := h.fetchOverview(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, toOverviewDTO(overview).KPIs)
}

// HandleGetTimeSeries handles GET /dashboard/timeseries
func (h *DashboardHandler) HandleGetTimeSeries(w http.ResponseWriter, r *http.Request) {
	overview, ok := h.fetchOverview(w, r)
	if !ok {
		return
	}

	WriteList(w, toOverviewDTO(overview).TimeSeries)
}

// HandleGetBreakdown handles GET /dashboard/breakdown
func (h *DashboardHandler) HandleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	overview, ok := h.fetchOverview(w, r)
	if !ok {
		return
	}

	WriteList(w, toOverviewDTO(overview).Breakdown)
}

// HandleGetTopTeams handles GET /dashboard/teams
func (h *DashboardHandler) HandleGetTopTeams(w http.ResponseWriter, r *http.Request) {
	overview, ok := h.fetchOverview(w, r)
	if !ok {
		return
	}

	WriteList(w, toOverviewDTO(overview).TopTeams)
}

func (h *DashboardHandler) fetchOverview(w http.ResponseWriter, r *http.Request) (*domain.DashboardOverview, bool) {
	spec := parseFilterSpec(r, h.logger)

	overview, err := h.dashboardService.GetOverview(r.Context(), spec)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return nil, false
	}
	return overview, true
}

// HandleListTickets handles GET /dashboard/tickets
func (h *DashboardHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	spec := parseFilterSpec(r, h.logger)

	tickets, err := h.dashboardService.ListTickets(r.Context(), spec)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleGetFilterOptions handles GET /dashboard/filter-options
func (h *DashboardHandler) HandleGetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.dashboardService.GetFilterOptions(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, FilterOptionsDTO{
		Teams:      options.Teams,
		Severities: options.Severities,
		Statuses:   options.Statuses,
	})
}
