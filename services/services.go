package services

import "gorm.io/gorm"

// Services bundles every service over one store handle.
type Services struct {
	Lifecycle    *OrderLifecycle
	Customers    *CustomerService
	Tables       *TableService
	Menu         *MenuService
	Orders       *OrderService
	Reservations *ReservationService
	Staff        *StaffService
	Reports      *ReportService
}

func New(db *gorm.DB, events EventPublisher, policy PaymentPolicy) *Services {
	return &Services{
		Lifecycle:    NewOrderLifecycle(db, WithEventPublisher(events), WithPaymentPolicy(policy)),
		Customers:    NewCustomerService(db),
		Tables:       NewTableService(db, events),
		Menu:         NewMenuService(db),
		Orders:       NewOrderService(db),
		Reservations: NewReservationService(db),
		Staff:        NewStaffService(db),
		Reports:      NewReportService(db),
	}
}
