package adaptor

import (
	"event-tickets/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Ticket  *TicketHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Ticket:  NewTicketHandler(service.Ticket, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}
