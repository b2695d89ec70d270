package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/opsboard/ticket-health-backend/internal/adapters/primary/http/middleware"
	"github.com/opsboard/ticket-health-backend/internal/adapters/primary/validation"
	"github.com/opsboard/ticket-health-backend/internal/auth"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// FlagHandler handles HTTP requests for per-user ticket flags, including the
// CSV export of the flagged set.
type FlagHandler struct {
	flagService   ports.FlagService
	exportService ports.ExportService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewFlagHandler creates a new flag handler
func NewFlagHandler(
	flagService ports.FlagService,
	exportService ports.ExportService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *FlagHandler {
	return &FlagHandler{
		flagService:   flagService,
		exportService: exportService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "flag"),
	}
}

// Router sets up a new chi Router for all flag-related routes.
func (h *FlagHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all flag endpoints.
func (h *FlagHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListFlagged)
	r.Get("/export", h.HandleExportCSV)
	r.Post("/bulk-unflag", h.HandleBulkUnflag)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetFlagStatus)
		r.Put("/", h.HandleFlagTicket)
		r.Delete("/", h.HandleUnflagTicket)
	})
}

// --- Request/Response DTOs ---

// FlagTicketRequest defines the expected JSON body for flagging a ticket.
// Notes are optional and stored as given on first flag; re-flagging an
// already-flagged ticket never overwrites them.
type FlagTicketRequest struct {
	Notes *string `json:"notes"`
}

// BulkUnflagRequest defines the expected JSON body for bulk unflagging
type BulkUnflagRequest struct {
	TicketIDs []int64 `json:"ticketIds"`
}

// Validate validates the bulk unflag request
func (r *BulkUnflagRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("ticketIds", len(r.TicketIDs) > 0, "At least one ticket ID is required")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// BulkUnflagResponse reports how many flags were actually removed
type BulkUnflagResponse struct {
	Removed int `json:"removed"`
}

// FlagStatusResponse reports whether the user has flagged a ticket
type FlagStatusResponse struct {
	TicketID int64 `json:"ticketId"`
	Flagged  bool  `json:"flagged"`
}

// --- Handlers ---

// HandleListFlagged handles GET /flags
func (h *FlagHandler) HandleListFlagged(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	spec := parseFilterSpec(r, h.logger)

	flagged, err := h.flagService.ListFlagged(r.Context(), claims.UserID, spec)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toFlaggedTicketDTOs(flagged))
}

// HandleGetFlagStatus handles GET /flags/{ticketID}
func (h *FlagHandler) HandleGetFlagStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	flagged, err := h.flagService.IsFlagged(r.Context(), claims.UserID, ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, FlagStatusResponse{
		TicketID: ticketID,
		Flagged:  flagged,
	})
}

// HandleFlagTicket handles PUT /flags/{ticketID}
func (h *FlagHandler) HandleFlagTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[FlagTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	flag, err := h.flagService.FlagTicket(r.Context(), claims.UserID, ticketID, req.Notes)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket flagged",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toFlagDTO(flag))
}

// HandleUnflagTicket handles DELETE /flags/{ticketID}
func (h *FlagHandler) HandleUnflagTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	removed, err := h.flagService.UnflagTicket(r.Context(), claims.UserID, ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !removed {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "Flag not found",
			Code:  "FLAG_NOT_FOUND",
		})
		return
	}

	h.logger.Info("ticket unflagged",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteNoContent(w)
}

// HandleBulkUnflag handles POST /flags/bulk-unflag
func (h *FlagHandler) HandleBulkUnflag(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[BulkUnflagRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	removed, err := h.flagService.BulkUnflag(r.Context(), claims.UserID, req.TicketIDs)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("flags bulk removed",
		"user_id", claims.UserID,
		"requested", len(req.TicketIDs),
		"removed", removed,
	)

	WriteJSON(w, http.StatusOK, BulkUnflagResponse{Removed: removed})
}

// HandleExportCSV handles GET /flags/export
func (h *FlagHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	spec := parseFilterSpec(r, h.logger)

	data, err := h.exportService.ExportFlaggedCSV(r.Context(), claims.UserID, spec)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("flagged tickets exported",
		"user_id", claims.UserID,
		"bytes", len(data),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="flagged_tickets.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// --- Helper methods ---

// getClaims extracts and validates user claims from the request context
func (h *FlagHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parseTicketID extracts and validates the ticket ID from the URL
func (h *FlagHandler) parseTicketID(r *http.Request) (int64, error) {
	ticketIDStr := chi.URLParam(r, "ticketID")
	ticketID, err := strconv.ParseInt(ticketIDStr, 10, 64)
	if err != nil || ticketID <= 0 {
		v := validation.NewValidator()
		v.Custom("ticketID", false, "Invalid ticket ID")
		return 0, v.Errors()
	}
	return ticketID, nil
}
