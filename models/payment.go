package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentCash PaymentMode = "CASH"
	PaymentCard PaymentMode = "CARD"
	PaymentUPI  PaymentMode = "UPI"
)

// Payment settles an order. AmountPaid is whatever the cashier entered; it
// is only compared with the order total when a payment policy asks for it.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index:idx_payments_order" json:"order_id"`
	Order       Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PaidAt      time.Time       `gorm:"not null;index:idx_payments_paid_at" json:"paid_at"`
	PaymentMode PaymentMode     `gorm:"type:varchar(10);not null;check:payment_mode IN ('CASH','CARD','UPI')" json:"payment_mode"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(10,2);not null;check:amount_paid >= 0" json:"amount_paid"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}
