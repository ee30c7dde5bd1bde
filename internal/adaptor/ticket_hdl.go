package adaptor

import (
	"encoding/json"
	"net/http"

	"event-tickets/internal/dto/request"
	"event-tickets/internal/usecase"
	"event-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// Create handles POST /api/tickets (public)
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	// Existing ticket for this phone comes back as 200, not 201, so
	// the form can tell the buyer they already have one
	if created {
		utils.ResponseCreated(w, "Ticket created", ticket)
		return
	}
	utils.ResponseSuccess(w, "Ticket already exists for this phone", ticket)
}

// GetByID handles GET /api/tickets/{id} (public, the digital-ticket view)
func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetByID(r.Context(), ticketID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// QRCode handles GET /api/tickets/{id}/qrcode (public)
func (h *TicketHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	png, err := h.service.QRCode(r.Context(), ticketID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ==================== ADMIN METHODS ====================

// List handles GET /api/admin/tickets?search= (admin only)
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	tickets, err := h.service.Search(r.Context(), query)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// Stats handles GET /api/admin/tickets/stats (admin only)
func (h *TicketHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// ConfirmPayment handles PUT /api/admin/tickets/{id}/confirm-payment (admin only)
func (h *TicketHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.ConfirmPayment(r.Context(), ticketID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", ticket)
}

// MarkUsed handles PUT /api/admin/tickets/{id}/use (admin only)
func (h *TicketHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.MarkUsed(r.Context(), ticketID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Ticket marked as used", ticket)
}

// RevertUsed handles PUT /api/admin/tickets/{id}/revert-use (admin only)
func (h *TicketHandler) RevertUsed(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.RevertUsed(r.Context(), ticketID)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Ticket usage reverted", ticket)
}
