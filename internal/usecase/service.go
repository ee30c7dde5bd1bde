package usecase

import (
	"event-tickets/internal/data/repository"
	"event-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Ticket  TicketService
	Payment PaymentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Ticket:  NewTicketService(repo, config, log),
		Payment: NewPaymentService(config, log),
	}
}
