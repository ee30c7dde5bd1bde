package usecase

import (
	"context"
	"fmt"

	"event-tickets/internal/dto/response"
	"event-tickets/pkg/errs"
	"event-tickets/pkg/pix"
	"event-tickets/pkg/utils"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// PaymentService exposes the static Pix payment info the purchase
// screen shows after a ticket is reserved. There is no gateway here:
// payment proof travels over WhatsApp and an admin confirms by hand.
type PaymentService interface {
	PixInfo(ctx context.Context, quantity int) (*response.PixInfoResponse, error)
	PixQRCode(ctx context.Context, quantity int) ([]byte, error)
}

type paymentService struct {
	config *utils.Config
	log    *zap.Logger
}

func NewPaymentService(config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) PixInfo(ctx context.Context, quantity int) (*response.PixInfoResponse, error) {
	if quantity < 1 || quantity > s.config.Ticket.MaxQuantity {
		return nil, errs.NewValidationError(map[string]string{
			"Quantity": fmt.Sprintf("Must be between 1 and %d", s.config.Ticket.MaxQuantity),
		})
	}

	amount := s.config.Ticket.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	brCode := pix.Payload{
		Key:          s.config.Payment.PixKey,
		MerchantName: s.config.Payment.MerchantName,
		MerchantCity: s.config.Payment.MerchantCity,
		Amount:       amount,
	}.Build()

	resp := &response.PixInfoResponse{
		PixKey:   s.config.Payment.PixKey,
		Quantity: quantity,
		Amount:   amount,
		BRCode:   brCode,
	}

	// Prefilled proof-of-payment message for the organizer's WhatsApp
	if s.config.Payment.WhatsAppNumber != "" {
		resp.WhatsAppURL = utils.WhatsAppURL(
			s.config.Payment.WhatsAppNumber,
			"Olá, acabei de efetuar o pagamento do ingresso. Segue o comprovante.",
		)
	}

	return resp, nil
}

func (s *paymentService) PixQRCode(ctx context.Context, quantity int) ([]byte, error) {
	info, err := s.PixInfo(ctx, quantity)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(info.BRCode, qrcode.Medium, 512)
	if err != nil {
		s.log.Error("Failed to encode Pix QR code", zap.Error(err))
		return nil, fmt.Errorf("encode pix QR code: %w", err)
	}

	return png, nil
}
