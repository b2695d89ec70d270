package http

import (
	"io"
	"log/slog"
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

func sampleTicket(id int64, key string) *domain.Ticket {
	team := "Platform"
	severity := "High"
	created := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	return &domain.Ticket{
		ID:       id,
		Key:      key,
		Summary:  "Elevated error rate on ingest pipeline",
		Status:   domain.StatusOpen,
		Priority: "High",
		Team:     &team,
		Severity: &severity,
		Created:  created,
		Updated:  created,
	}
}
