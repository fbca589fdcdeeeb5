package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Category     MenuCategory    `gorm:"type:varchar(20);not null;check:category IN ('STARTER','MAIN COURSE','DESSERT','BEVERAGE')" json:"category"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price > 0" json:"price"`
	Availability Availability    `gorm:"type:varchar(20);not null;default:'AVAILABLE';check:availability IN ('AVAILABLE','OUT OF STOCK')" json:"availability"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}
