package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/adapters/primary/validation"
	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

// parseFilterSpec builds a FilterSpec from the standard dashboard query
// parameters: date_start, date_end (ISO dates), teams, severities, statuses
// (comma-separated). Malformed dates are logged and dropped rather than
// failing the request, leaving that bound unrestricted.
func parseFilterSpec(r *http.Request, logger *slog.Logger) domain.FilterSpec {
	var dateStart, dateEnd *time.Time

	if raw := r.URL.Query().Get("date_start"); raw != "" {
		if parsed, ok := domain.ParseFilterDate(raw); ok {
			dateStart = &parsed
		} else {
			logger.Warn("ignoring malformed date_start", "value", raw)
		}
	}

	if raw := r.URL.Query().Get("date_end"); raw != "" {
		if parsed, ok := domain.ParseFilterDate(raw); ok {
			dateEnd = &parsed
		} else {
			logger.Warn("ignoring malformed date_end", "value", raw)
		}
	}

	teams := validation.ParseCSVQueryParam(r, "teams")
	severities := validation.ParseCSVQueryParam(r, "severities")
	statuses := validation.ParseCSVQueryParam(r, "statuses")

	return domain.NewFilterSpec(dateStart, dateEnd, teams, severities, statuses)
}
