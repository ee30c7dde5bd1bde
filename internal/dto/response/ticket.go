package response

import (
	"fmt"
	"time"

	"event-tickets/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TicketResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Quantity      int                  `json:"quantity"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	Used          bool                 `json:"used"`
	TicketURL     string               `json:"ticket_url"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ConfirmPaymentResponse carries the updated ticket plus the WhatsApp
// deep link the admin uses to notify the buyer
type ConfirmPaymentResponse struct {
	TicketResponse
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

type TicketStatsResponse struct {
	Total   int64 `json:"total"`
	Paid    int64 `json:"paid"`
	Pending int64 `json:"pending"`
	Used    int64 `json:"used"`
}

// PixInfoResponse is everything the payment screen needs: the static
// key for copy-paste, the full BR Code payload, and the
// proof-of-payment contact link
type PixInfoResponse struct {
	PixKey      string          `json:"pix_key"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	BRCode      string          `json:"br_code"`
	WhatsAppURL string          `json:"whatsapp_url,omitempty"`
}

// Helper converters

func TicketURL(baseURL string, id string) string {
	return fmt.Sprintf("%s/tickets/%s", baseURL, id)
}

func TicketToResponse(ticket *entity.Ticket, baseURL string) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID.String(),
		Name:          ticket.Name,
		Phone:         ticket.Phone,
		Quantity:      ticket.Quantity,
		TotalAmount:   ticket.TotalAmount,
		PaymentStatus: ticket.PaymentStatus,
		Used:          ticket.Used,
		TicketURL:     TicketURL(baseURL, ticket.ID.String()),
		CreatedAt:     ticket.CreatedAt,
	}
}

func TicketsToResponse(tickets []*entity.Ticket, baseURL string) []TicketResponse {
	responses := make([]TicketResponse, len(tickets))
	for i, ticket := range tickets {
		responses[i] = TicketToResponse(ticket, baseURL)
	}
	return responses
}
