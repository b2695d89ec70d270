package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opsboard/ticket-health-backend/internal/adapters/primary/validation"
	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// TicketHandler handles HTTP requests for ticket mutations
type TicketHandler struct {
	ticketService ports.TicketService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService ports.TicketService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "ticket"),
	}
}

// Router sets up a new chi Router for all ticket-related routes.
func (h *TicketHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateTicket)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.Patch("/", h.HandleUpdateTicket)
		r.Patch("/status", h.HandleUpdateTicketStatus)
		r.Patch("/assignee", h.HandleAssignTicket)
		r.Delete("/", h.HandleDeleteTicket)
	})
}

// --- Request/Response DTOs ---

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Assignee    string   `json:"assignee"`
	Team        *string  `json:"team"`
	Severity    *string  `json:"severity"`
	Components  []string `json:"components"`
	Created     *string  `json:"created"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("key", r.Key)

	v.Required("summary", r.Summary).
		MaxLength("summary", r.Summary, domain.MaxSummaryLength)

	v.MaxLength("description", r.Description, domain.MaxDescriptionLength)

	if r.Created != nil {
		_, err := time.Parse(time.RFC3339, *r.Created)
		v.Custom("created", err == nil, "Must be a valid RFC3339 timestamp")
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateStatusRequest defines the expected JSON body for status updates
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the update status request
func (r *UpdateStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignTicketRequest defines the expected JSON body for assigning a ticket.
// An empty assignee unassigns the ticket.
type AssignTicketRequest struct {
	Assignee string `json:"assignee"`
}

// UpdateTicketRequest defines the expected JSON body for partial ticket
// updates. Absent fields are left untouched.
type UpdateTicketRequest struct {
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Resolution  *string `json:"resolution"`
	Team        *string `json:"team"`
	Severity    *string `json:"severity"`
	Assignee    *string `json:"assignee"`
	MitigatedAt *string `json:"mitigatedAt"`
	ResolvedAt  *string `json:"resolvedAt"`
}

// Validate validates the update ticket request
func (r *UpdateTicketRequest) Validate() error {
	v := validation.NewValidator()

	if r.Summary != nil {
		v.Required("summary", *r.Summary).
			MaxLength("summary", *r.Summary, domain.MaxSummaryLength)
	}
	if r.Description != nil {
		v.MaxLength("description", *r.Description, domain.MaxDescriptionLength)
	}
	if r.MitigatedAt != nil {
		_, err := time.Parse(time.RFC3339, *r.MitigatedAt)
		v.Custom("mitigatedAt", err == nil, "Must be a valid RFC3339 timestamp")
	}
	if r.ResolvedAt != nil {
		_, err := time.Parse(time.RFC3339, *r.ResolvedAt)
		v.Custom("resolvedAt", err == nil, "Must be a valid RFC3339 timestamp")
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Handlers ---

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := domain.TicketParams{
		Key:         req.Key,
		Summary:     req.Summary,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Team:        req.Team,
		Severity:    req.Severity,
		Components:  req.Components,
	}
	if req.Created != nil {
		if created, err := time.Parse(time.RFC3339, *req.Created); err == nil {
			params.Created = created
		}
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"ticket_key", ticket.Key,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicket handles PATCH /tickets/{ticketID}
func (h *TicketHandler) HandleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateTicketParams{
		Summary:     req.Summary,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Resolution:  req.Resolution,
		Team:        req.Team,
		Severity:    req.Severity,
		Assignee:    req.Assignee,
	}
	if req.MitigatedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.MitigatedAt); err == nil {
			params.MitigatedAt = &parsed
		}
	}
	if req.ResolvedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.ResolvedAt); err == nil {
			params.ResolvedAt = &parsed
		}
	}

	ticket, err := h.ticketService.UpdateTicket(r.Context(), ticketID, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket updated", "ticket_id", ticketID)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicketStatus handles PATCH /tickets/{ticketID}/status
func (h *TicketHandler) HandleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.UpdateStatus(r.Context(), ticketID, req.Status)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket status updated",
		"ticket_id", ticketID,
		"new_status", req.Status,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleAssignTicket handles PATCH /tickets/{ticketID}/assignee
func (h *TicketHandler) HandleAssignTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.AssignTicket(r.Context(), ticketID, req.Assignee)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket assigned",
		"ticket_id", ticketID,
		"assignee", req.Assignee,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleDeleteTicket handles DELETE /tickets/{ticketID}
func (h *TicketHandler) HandleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	deleted, err := h.ticketService.DeleteTicket(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !deleted {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "Ticket not found",
			Code:  "TICKET_NOT_FOUND",
		})
		return
	}

	h.logger.Info("ticket deleted", "ticket_id", ticketID)

	WriteNoContent(w)
}

// --- Helper methods ---

// parseTicketID extracts and validates the ticket ID from the URL
func (h *TicketHandler) parseTicketID(r *http.Request) (int64, error) {
	ticketIDStr := chi.URLParam(r, "ticketID")
	ticketID, err := strconv.ParseInt(ticketIDStr, 10, 64)
	if err != nil || ticketID <= 0 {
		v := validation.NewValidator()
		v.Custom("ticketID", false, "Invalid ticket ID")
		return 0, v.Errors()
	}
	return ticketID, nil
}
