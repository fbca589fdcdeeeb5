package models

import "github.com/shopspring/decimal"

// OrderItem is keyed by (order, menu item). ItemTotal is the price times
// quantity captured when the order was created, not a live reference.
type OrderItem struct {
	OrderID    uint            `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	MenuItemID uint            `gorm:"primaryKey;autoIncrement:false;index:idx_order_items_menu_item" json:"menu_item_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	ItemTotal  decimal.Decimal `gorm:"type:decimal(10,2);not null;check:item_total >= 0" json:"item_total"`
}
