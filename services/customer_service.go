package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

// NewCustomer is the input for AddCustomer. Empty optional fields are stored as NULL.
type NewCustomer struct {
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Address    *string `json:"address"`
}

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// AddCustomer inserts a customer. A phone or email already on file is a
// constraint violation.
func (s *CustomerService) AddCustomer(ctx context.Context, in NewCustomer) (uint, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.MiddleName = nilIfBlank(in.MiddleName)
	in.Phone = nilIfBlank(in.Phone)
	in.Email = nilIfBlank(in.Email)
	in.Address = nilIfBlank(in.Address)
	if err := validateStruct(in); err != nil {
		return 0, err
	}

	customer := models.Customer{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return 0, classifyError(err)
	}

	utils.InfoLogger.WithField("customer_id", customer.ID).Info("Customer added")
	return customer.ID, nil
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, classifyError(err)
	}
	return customers, nil
}
