package repository

import (
	"event-tickets/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Ticket  TicketRepository
	User    UserRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Ticket:  NewTicketRepository(db, log),
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}
