package models

import "time"

type StaffRole string

const (
	RoleWaiter  StaffRole = "WAITER"
	RoleChef    StaffRole = "CHEF"
	RoleManager StaffRole = "MANAGER"
	RoleCleaner StaffRole = "CLEANER"
)

type Staff struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FirstName  string     `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName *string    `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	LastName   string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone      *string    `gorm:"type:varchar(32);uniqueIndex:idx_staff_phone" json:"phone,omitempty"`
	Email      *string    `gorm:"type:varchar(255);uniqueIndex:idx_staff_email" json:"email,omitempty"`
	Address    *string    `gorm:"type:text" json:"address,omitempty"`
	Role       StaffRole  `gorm:"type:varchar(20);not null;check:role IN ('WAITER','CHEF','MANAGER','CLEANER')" json:"role"`
	ShiftStart *time.Time `json:"shift_start,omitempty"`
	ShiftEnd   *time.Time `json:"shift_end,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}

type StaffAssignment struct {
	StaffID     uint      `gorm:"primaryKey;autoIncrement:false" json:"staff_id"`
	Staff       Staff     `gorm:"foreignKey:StaffID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID     uint      `gorm:"primaryKey;autoIncrement:false;index:idx_staff_assignments_order" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RoleInOrder string    `gorm:"type:varchar(50)" json:"role_in_order"`
	AssignedAt  time.Time `gorm:"not null" json:"assigned_at"`
}
