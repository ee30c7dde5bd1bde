package adaptor

import (
	"net/http"

	"event-tickets/internal/usecase"
	"event-tickets/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// PixInfo handles GET /api/payment/pix?quantity=N (public)
func (h *PaymentHandler) PixInfo(w http.ResponseWriter, r *http.Request) {
	quantity := utils.ParseInt(r.URL.Query().Get("quantity"), 1)

	info, err := h.service.PixInfo(r.Context(), quantity)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", info)
}

// PixQRCode handles GET /api/payment/pix/qrcode?quantity=N (public)
func (h *PaymentHandler) PixQRCode(w http.ResponseWriter, r *http.Request) {
	quantity := utils.ParseInt(r.URL.Query().Get("quantity"), 1)

	png, err := h.service.PixQRCode(r.Context(), quantity)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
