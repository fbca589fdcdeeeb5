package models

import "time"

type Reservation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CustomerID     uint      `gorm:"not null;index:idx_reservations_customer" json:"customer_id"`
	Customer       Customer  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID        uint      `gorm:"not null;index:idx_reservations_table" json:"table_id"`
	Table          Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ReservedFor    time.Time `gorm:"not null" json:"reserved_for"`
	NumberOfPeople int       `gorm:"not null;check:number_of_people > 0" json:"number_of_people"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
