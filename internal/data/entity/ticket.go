package entity

import (
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
)

// Ticket is one admission record, possibly covering several people
// (Quantity). Phone is the dedup key: the tickets table carries a
// UNIQUE constraint on it, so one buyer gets at most one ticket.
type Ticket struct {
	Base
	Name          string          `db:"name"`
	Phone         string          `db:"phone"`
	Quantity      int             `db:"quantity"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	Used          bool            `db:"used"`
}
