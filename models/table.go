package models

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
)

// Table is a physical dining table. The booking status is flipped by the
// order lifecycle: OCCUPIED on order creation, AVAILABLE on payment or cancel.
type Table struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SeatingCapacity int         `gorm:"not null;check:seating_capacity > 0" json:"seating_capacity"`
	BookingStatus   TableStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';check:booking_status IN ('AVAILABLE','OCCUPIED','RESERVED')" json:"booking_status"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

// TableName keeps clear of the TABLES keyword on MySQL.
func (Table) TableName() string {
	return "rest_tables"
}
