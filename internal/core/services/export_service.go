package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// exportColumns is the fixed CSV column order of the flagged-ticket export.
var exportColumns = []string{
	"key",
	"title",
	"team",
	"severity",
	"status",
	"created",
	"updated",
	"assignee",
	"time_to_resolve_hours",
	"flagged_at",
	"flag_notes",
}

// ExportService renders a user's flagged tickets as CSV.
type ExportService struct {
	flagService ports.FlagService
}

var _ ports.ExportService = (*ExportService)(nil)

// NewExportService creates a new export service.
func NewExportService(flagService ports.FlagService) ports.ExportService {
	return &ExportService{flagService: flagService}
}

// ExportFlaggedCSV renders the user's flagged tickets matching the spec as
// UTF-8 CSV. Timestamps are RFC 3339, resolve hours are rendered with two
// decimals, and optional fields are empty cells. An empty flag set still
// produces the header row.
func (s *ExportService) ExportFlaggedCSV(ctx context.Context, userID int64, spec domain.FilterSpec) ([]byte, error) {
	flagged, err := s.flagService.ListFlagged(ctx, userID, spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}

	for _, ft := range flagged {
		t := ft.Ticket
		record := []string{
			t.Key,
			t.Summary,
			stringOrEmpty(t.Team),
			stringOrEmpty(t.Severity),
			t.Status,
			t.Created.UTC().Format(time.RFC3339),
			t.Updated.UTC().Format(time.RFC3339),
			t.Assignee,
			hoursOrEmpty(t.TimeToResolveHours),
			ft.Flag.FlaggedAt.UTC().Format(time.RFC3339),
			stringOrEmpty(ft.Flag.Notes),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hoursOrEmpty(hours *float64) string {
	if hours == nil {
		return ""
	}
	return strconv.FormatFloat(*hours, 'f', 2, 64)
}
