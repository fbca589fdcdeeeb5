package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is inserted with a zero total inside the creation transaction and
// finalized with the sum of its line totals before commit.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  uint            `gorm:"not null;index:idx_orders_customer" json:"customer_id"`
	Customer    Customer        `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID     uint            `gorm:"not null;index:idx_orders_table" json:"table_id"`
	Table       Table           `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OrderedAt   time.Time       `gorm:"not null;index:idx_orders_ordered_at" json:"ordered_at"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;check:total_amount >= 0" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING','COMPLETED','CANCELLED')" json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// Reference is the human readable order number shown on reports.
func (o *Order) Reference() string {
	return fmt.Sprintf("ORD-%s-%06d", o.OrderedAt.Format("20060102"), o.ID)
}
