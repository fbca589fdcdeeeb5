package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName *string   `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone      *string   `gorm:"type:varchar(32);uniqueIndex:idx_customers_phone" json:"phone,omitempty"`
	Email      *string   `gorm:"type:varchar(255);uniqueIndex:idx_customers_email" json:"email,omitempty"`
	Address    *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// FullName joins the name parts, skipping an empty middle name.
func (c Customer) FullName() string {
	parts := []string{c.FirstName}
	if c.MiddleName != nil && *c.MiddleName != "" {
		parts = append(parts, *c.MiddleName)
	}
	parts = append(parts, c.LastName)
	return strings.Join(parts, " ")
}
