package wire

import (
	"event-tickets/internal/adaptor"
	"event-tickets/internal/data/repository"
	"event-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/admin/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/admin/logout", authHandler.Logout)
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/admin/session", authHandler.Session)
}
