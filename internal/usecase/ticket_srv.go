package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-tickets/internal/data/entity"
	"event-tickets/internal/data/repository"
	"event-tickets/internal/dto/request"
	"event-tickets/internal/dto/response"
	"event-tickets/pkg/errs"
	"event-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// TicketService owns the ticket lifecycle: it is the only component
// that creates or mutates tickets, and it encapsulates the one-ticket-
// per-phone rule and the payment/used transitions.
type TicketService interface {
	// Public endpoints
	Create(ctx context.Context, req *request.CreateTicketRequest) (*response.TicketResponse, bool, error)
	GetByID(ctx context.Context, ticketID string) (*response.TicketResponse, error)
	QRCode(ctx context.Context, ticketID string) ([]byte, error)

	// Admin endpoints
	List(ctx context.Context) ([]response.TicketResponse, error)
	Search(ctx context.Context, query string) ([]response.TicketResponse, error)
	Stats(ctx context.Context) (*response.TicketStatsResponse, error)
	ConfirmPayment(ctx context.Context, ticketID string) (*response.ConfirmPaymentResponse, error)
	MarkUsed(ctx context.Context, ticketID string) (*response.TicketResponse, error)
	RevertUsed(ctx context.Context, ticketID string) (*response.TicketResponse, error)
}

type ticketService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewTicketService(repo *repository.Repository, config *utils.Config, log *zap.Logger) TicketService {
	return &ticketService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Create(ctx context.Context, req *request.CreateTicketRequest) (*response.TicketResponse, bool, error) {
	// Validate request
	if fieldErrs := utils.ValidateStruct(req); len(fieldErrs) > 0 {
		s.log.Warn("Create ticket validation failed", zap.Any("errors", fieldErrs))
		return nil, false, errs.NewValidationError(fieldErrs)
	}

	// Quantity cap is a config knob, not a struct tag
	if req.Quantity > s.config.Ticket.MaxQuantity {
		return nil, false, errs.NewValidationError(map[string]string{
			"Quantity": fmt.Sprintf("Maximum is %d", s.config.Ticket.MaxQuantity),
		})
	}

	now := time.Now()
	ticket := &entity.Ticket{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Quantity:      req.Quantity,
		TotalAmount:   s.config.Ticket.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		PaymentStatus: entity.PaymentStatusPending,
		Used:          false,
	}

	// One ticket per phone: the repository either inserts or hands
	// back the existing row, atomically
	saved, created, err := s.repo.Ticket.InsertOrGetByPhone(ctx, ticket)
	if err != nil {
		s.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("phone", req.Phone),
		)
		return nil, false, fmt.Errorf("create ticket: %w", err)
	}

	if created {
		s.log.Info("Ticket created",
			zap.String("ticket_id", saved.ID.String()),
			zap.String("phone", saved.Phone),
			zap.Int("quantity", saved.Quantity),
			zap.String("total_amount", saved.TotalAmount.String()),
		)
	} else {
		s.log.Info("Ticket already exists for phone, returning existing",
			zap.String("ticket_id", saved.ID.String()),
			zap.String("phone", saved.Phone),
		)
	}

	resp := response.TicketToResponse(saved, s.config.App.PublicBaseURL)
	return &resp, created, nil
}

func (s *ticketService) GetByID(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket, s.config.App.PublicBaseURL)
	return &resp, nil
}

// QRCode renders the scannable code for the digital-ticket view: a PNG
// QR pointing at the public ticket URL
func (s *ticketService) QRCode(ctx context.Context, ticketID string) ([]byte, error) {
	ticket, err := s.findTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	url := response.TicketURL(s.config.App.PublicBaseURL, ticket.ID.String())
	png, err := qrcode.Encode(url, qrcode.High, 512)
	if err != nil {
		s.log.Error("Failed to encode ticket QR code",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return nil, fmt.Errorf("encode ticket QR code: %w", err)
	}

	return png, nil
}

func (s *ticketService) List(ctx context.Context) ([]response.TicketResponse, error) {
	tickets, err := s.repo.Ticket.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list tickets", zap.Error(err))
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return response.TicketsToResponse(tickets, s.config.App.PublicBaseURL), nil
}

func (s *ticketService) Search(ctx context.Context, query string) ([]response.TicketResponse, error) {
	// Blank query means "show everything", same as the dashboard list
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	tickets, err := s.repo.Ticket.Search(ctx, query)
	if err != nil {
		s.log.Error("Failed to search tickets",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search tickets: %w", err)
	}

	return response.TicketsToResponse(tickets, s.config.App.PublicBaseURL), nil
}

func (s *ticketService) Stats(ctx context.Context) (*response.TicketStatsResponse, error) {
	stats, err := s.repo.Ticket.CountStats(ctx)
	if err != nil {
		s.log.Error("Failed to get ticket stats", zap.Error(err))
		return nil, fmt.Errorf("ticket stats: %w", err)
	}

	return &response.TicketStatsResponse{
		Total:   stats.Total,
		Paid:    stats.Paid,
		Pending: stats.Pending,
		Used:    stats.Used,
	}, nil
}

func (s *ticketService) ConfirmPayment(ctx context.Context, ticketID string) (*response.ConfirmPaymentResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, errs.NewValidationError(map[string]string{"ID": "Must be a valid UUID"})
	}

	ticket, err := s.repo.Ticket.UpdatePaymentStatus(ctx, id, entity.PaymentStatusConfirmed)
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment confirmed",
		zap.String("ticket_id", ticketID),
		zap.String("phone", ticket.Phone),
	)

	// Deep link so the admin can send the buyer their ticket right away
	ticketURL := response.TicketURL(s.config.App.PublicBaseURL, ticket.ID.String())
	message := fmt.Sprintf(
		"Olá %s, seu pagamento foi confirmado! 🎟️\n\nAcesse seu ingresso aqui: %s",
		ticket.Name, ticketURL,
	)

	return &response.ConfirmPaymentResponse{
		TicketResponse: response.TicketToResponse(ticket, s.config.App.PublicBaseURL),
		WhatsAppURL:    utils.WhatsAppURL(ticket.Phone, message),
	}, nil
}

func (s *ticketService) MarkUsed(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, errs.NewValidationError(map[string]string{"ID": "Must be a valid UUID"})
	}

	// Legacy behavior lets an admin redeem an unpaid ticket; the
	// policy flag tightens that when enabled
	if s.config.Ticket.RequireConfirmedBeforeUse {
		ticket, err := s.repo.Ticket.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, fmt.Errorf("ticket %s: %w", ticketID, errs.ErrNotFound)
		}
		if ticket.PaymentStatus != entity.PaymentStatusConfirmed {
			return nil, fmt.Errorf("ticket %s: %w", ticketID, errs.ErrPaymentNotConfirmed)
		}
	}

	ticket, err := s.repo.Ticket.UpdateUsed(ctx, id, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("Ticket marked as used", zap.String("ticket_id", ticketID))

	resp := response.TicketToResponse(ticket, s.config.App.PublicBaseURL)
	return &resp, nil
}

func (s *ticketService) RevertUsed(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, errs.NewValidationError(map[string]string{"ID": "Must be a valid UUID"})
	}

	ticket, err := s.repo.Ticket.UpdateUsed(ctx, id, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("Ticket usage reverted", zap.String("ticket_id", ticketID))

	resp := response.TicketToResponse(ticket, s.config.App.PublicBaseURL)
	return &resp, nil
}

// findTicket resolves id string -> entity, mapping absence to ErrNotFound
func (s *ticketService) findTicket(ctx context.Context, ticketID string) (*entity.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, errs.NewValidationError(map[string]string{"ID": "Must be a valid UUID"})
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, errs.ErrNotFound)
	}

	return ticket, nil
}
