package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type NewStaff struct {
	FirstName  string           `json:"first_name" validate:"required,max=100"`
	MiddleName *string          `json:"middle_name" validate:"omitempty,max=100"`
	LastName   string           `json:"last_name" validate:"required,max=100"`
	Phone      *string          `json:"phone" validate:"omitempty,max=32"`
	Email      *string          `json:"email" validate:"omitempty,email,max=255"`
	Address    *string          `json:"address"`
	Role       models.StaffRole `json:"role" validate:"oneof=WAITER CHEF MANAGER CLEANER"`
	ShiftStart *time.Time       `json:"shift_start"`
	ShiftEnd   *time.Time       `json:"shift_end"`
}

type assignmentInput struct {
	StaffID     uint   `json:"staff_id" validate:"required"`
	OrderID     uint   `json:"order_id" validate:"required"`
	RoleInOrder string `json:"role_in_order" validate:"max=50"`
}

type StaffService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db, now: time.Now}
}

func (s *StaffService) AddStaff(ctx context.Context, in NewStaff) (uint, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.MiddleName = nilIfBlank(in.MiddleName)
	in.Phone = nilIfBlank(in.Phone)
	in.Email = nilIfBlank(in.Email)
	in.Address = nilIfBlank(in.Address)
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if in.ShiftStart != nil && in.ShiftEnd != nil && !in.ShiftEnd.After(*in.ShiftStart) {
		return 0, ValidationError{Field: "shift_end", Message: "must be after shift_start"}
	}

	staff := models.Staff{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
		Role:       in.Role,
		ShiftStart: in.ShiftStart,
		ShiftEnd:   in.ShiftEnd,
	}
	if err := s.db.WithContext(ctx).Create(&staff).Error; err != nil {
		return 0, classifyError(err)
	}

	utils.InfoLogger.WithField("staff_id", staff.ID).Infof("Staff member added as %s", staff.Role)
	return staff.ID, nil
}

func (s *StaffService) GetAllStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.db.WithContext(ctx).Order("id").Find(&staff).Error; err != nil {
		return nil, classifyError(err)
	}
	return staff, nil
}

// AssignStaff links a staff member to an order. Assigning the same pair
// twice is a constraint violation.
func (s *StaffService) AssignStaff(ctx context.Context, staffID, orderID uint, role string) error {
	role = strings.TrimSpace(role)
	if err := validateStruct(assignmentInput{StaffID: staffID, OrderID: orderID, RoleInOrder: role}); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.Select("id").First(&staff, staffID).Error; err != nil {
			return lookupError("staff", staffID, err)
		}
		var order models.Order
		if err := tx.Select("id").First(&order, orderID).Error; err != nil {
			return lookupError("order", orderID, err)
		}

		assignment := models.StaffAssignment{
			StaffID:     staffID,
			OrderID:     orderID,
			RoleInOrder: role,
			AssignedAt:  s.now().UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(&assignment).Error; err != nil {
			return classifyError(err)
		}

		utils.InfoLogger.WithField("order_id", orderID).Infof("Staff %d assigned", staffID)
		return nil
	})
}

func (s *StaffService) GetAssignments(ctx context.Context, orderID uint) ([]models.StaffAssignment, error) {
	var assignments []models.StaffAssignment
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("assigned_at, staff_id").
		Find(&assignments).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return assignments, nil
}
