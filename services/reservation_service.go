package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type NewReservation struct {
	CustomerID     uint      `json:"customer_id" validate:"required"`
	TableID        uint      `json:"table_id" validate:"required"`
	ReservedFor    time.Time `json:"reserved_for" validate:"required"`
	NumberOfPeople int       `json:"number_of_people" validate:"gt=0"`
}

// ReservationService books tables ahead of time. Reservations are records
// only; they do not change the table's booking status.
type ReservationService struct {
	db *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

func (s *ReservationService) AddReservation(ctx context.Context, in NewReservation) (uint, error) {
	if err := validateStruct(in); err != nil {
		return 0, err
	}

	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, in.TableID).Error; err != nil {
			return lookupError("table", in.TableID, err)
		}
		if in.NumberOfPeople > table.SeatingCapacity {
			return ValidationError{
				Field:   "number_of_people",
				Message: "exceeds the table's seating capacity",
			}
		}
		var customer models.Customer
		if err := tx.Select("id").First(&customer, in.CustomerID).Error; err != nil {
			return lookupError("customer", in.CustomerID, err)
		}

		reservation := models.Reservation{
			CustomerID:     in.CustomerID,
			TableID:        in.TableID,
			ReservedFor:    in.ReservedFor.UTC(),
			NumberOfPeople: in.NumberOfPeople,
		}
		if err := tx.Omit("Customer", "Table").Create(&reservation).Error; err != nil {
			return classifyError(err)
		}
		id = reservation.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.InfoLogger.WithField("reservation_id", id).Info("Reservation added")
	return id, nil
}

func (s *ReservationService) GetAllReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.WithContext(ctx).Order("reserved_for, id").Find(&reservations).Error; err != nil {
		return nil, classifyError(err)
	}
	return reservations, nil
}
