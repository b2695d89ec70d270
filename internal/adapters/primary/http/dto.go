package http

import (
	"time"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
)

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID                 int64    `json:"id"`
	Key                string   `json:"key"`
	Summary            string   `json:"summary"`
	Description        string   `json:"description,omitempty"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority,omitempty"`
	Resolution         string   `json:"resolution,omitempty"`
	Assignee           string   `json:"assignee,omitempty"`
	Team               *string  `json:"team"`
	Severity           *string  `json:"severity"`
	Components         []string `json:"components,omitempty"`
	Created            string   `json:"created"`
	Updated            string   `json:"updated"`
	OutageStart        *string  `json:"outageStart,omitempty"`
	OutageEnd          *string  `json:"outageEnd,omitempty"`
	MitigatedAt        *string  `json:"mitigatedAt,omitempty"`
	ResolvedAt         *string  `json:"resolvedAt,omitempty"`
	TimeToResolveHours *float64 `json:"timeToResolveHours"`
}

// FlaggedTicketDTO pairs a ticket with the requesting user's flag on it.
type FlaggedTicketDTO struct {
	Ticket    TicketDTO `json:"ticket"`
	FlaggedAt string    `json:"flaggedAt"`
	Notes     *string   `json:"notes"`
}

// FlagDTO defines the JSON response for a flag.
type FlagDTO struct {
	ID        int64   `json:"id"`
	TicketID  int64   `json:"ticketId"`
	FlaggedAt string  `json:"flaggedAt"`
	Notes     *string `json:"notes"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format(time.RFC3339)
	return &value
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	return TicketDTO{
		ID:                 ticket.ID,
		Key:                ticket.Key,
		Summary:            ticket.Summary,
		Description:        ticket.Description,
		Status:             ticket.Status,
		Priority:           ticket.Priority,
		Resolution:         ticket.Resolution,
		Assignee:           ticket.Assignee,
		Team:               ticket.Team,
		Severity:           ticket.Severity,
		Components:         ticket.Components,
		Created:            ticket.Created.Format(time.RFC3339),
		Updated:            ticket.Updated.Format(time.RFC3339),
		OutageStart:        formatTimePtr(ticket.OutageStart),
		OutageEnd:          formatTimePtr(ticket.OutageEnd),
		MitigatedAt:        formatTimePtr(ticket.MitigatedAt),
		ResolvedAt:         formatTimePtr(ticket.ResolvedAt),
		TimeToResolveHours: ticket.TimeToResolveHours,
	}
}

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

func toFlagDTO(flag *domain.Flag) FlagDTO {
	return FlagDTO{
		ID:        flag.ID,
		TicketID:  flag.TicketID,
		FlaggedAt: flag.FlaggedAt.Format(time.RFC3339),
		Notes:     flag.Notes,
	}
}

func toFlaggedTicketDTOs(flagged []domain.FlaggedTicket) []FlaggedTicketDTO {
	response := make([]FlaggedTicketDTO, 0, len(flagged))
	for _, ft := range flagged {
		response = append(response, FlaggedTicketDTO{
			Ticket:    toTicketDTO(ft.Ticket),
			FlaggedAt: ft.Flag.FlaggedAt.Format(time.RFC3339),
			Notes:     ft.Flag.Notes,
		})
	}
	return response
}
