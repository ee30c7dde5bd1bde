package wire

import (
	"event-tickets/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// Public: the purchase screen fetches these right after reserving
	r.Get("/api/payment/pix", paymentHandler.PixInfo)
	r.Get("/api/payment/pix/qrcode", paymentHandler.PixQRCode)
}
