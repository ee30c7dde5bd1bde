package wire

import (
	"event-tickets/internal/adaptor"
	"event-tickets/internal/data/repository"
	"event-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/tickets - buyer reserves a ticket
	r.Post("/api/tickets", ticketHandler.Create)

	// GET /api/tickets/{id} - digital-ticket view data
	r.Get("/api/tickets/{id}", ticketHandler.GetByID)

	// GET /api/tickets/{id}/qrcode - scannable entry code (PNG)
	r.Get("/api/tickets/{id}/qrcode", ticketHandler.QRCode)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/tickets", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/tickets?search= - list or search tickets
		r.Get("/", ticketHandler.List)

		// GET /api/admin/tickets/stats - dashboard counters
		r.Get("/stats", ticketHandler.Stats)

		// PUT /api/admin/tickets/{id}/confirm-payment
		r.Put("/{id}/confirm-payment", ticketHandler.ConfirmPayment)

		// PUT /api/admin/tickets/{id}/use
		r.Put("/{id}/use", ticketHandler.MarkUsed)

		// PUT /api/admin/tickets/{id}/revert-use
		r.Put("/{id}/revert-use", ticketHandler.RevertUsed)
	})
}
