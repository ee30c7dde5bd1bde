package usecase

import (
	"context"
	"testing"

	"event-tickets/pkg/errs"
	"event-tickets/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentTestService() PaymentService {
	cfg := &utils.Config{
		Ticket: utils.TicketConfig{
			UnitPrice:   decimal.NewFromInt(30),
			MaxQuantity: 6,
		},
		Payment: utils.PaymentConfig{
			PixKey:         "03348965330",
			MerchantName:   "EVENT TICKETS",
			MerchantCity:   "TERESINA",
			WhatsAppNumber: "(86) 99800-1122",
		},
	}
	return NewPaymentService(cfg, zap.NewNop())
}

func TestPixInfo(t *testing.T) {
	svc := newPaymentTestService()

	info, err := svc.PixInfo(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "03348965330", info.PixKey)
	assert.Equal(t, 2, info.Quantity)
	assert.True(t, info.Amount.Equal(decimal.NewFromInt(60)))
	assert.Contains(t, info.BRCode, "br.gov.bcb.pix")
	assert.Contains(t, info.BRCode, "540560.00")
	assert.Contains(t, info.WhatsAppURL, "https://wa.me/5586998001122")
}

func TestPixInfoQuantityBounds(t *testing.T) {
	svc := newPaymentTestService()

	for _, quantity := range []int{0, -1, 7} {
		_, err := svc.PixInfo(context.Background(), quantity)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr, "quantity %d", quantity)
	}
}

func TestPixInfoOmitsWhatsAppWhenUnconfigured(t *testing.T) {
	cfg := &utils.Config{
		Ticket: utils.TicketConfig{
			UnitPrice:   decimal.NewFromInt(30),
			MaxQuantity: 6,
		},
		Payment: utils.PaymentConfig{
			PixKey:       "03348965330",
			MerchantName: "EVENT TICKETS",
			MerchantCity: "TERESINA",
		},
	}
	svc := NewPaymentService(cfg, zap.NewNop())

	info, err := svc.PixInfo(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, info.WhatsAppURL)
}

func TestPixQRCode(t *testing.T) {
	svc := newPaymentTestService()

	png, err := svc.PixQRCode(context.Background(), 1)
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
