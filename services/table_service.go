package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type tableInput struct {
	SeatingCapacity int                `json:"seating_capacity" validate:"gt=0"`
	BookingStatus   models.TableStatus `json:"booking_status" validate:"oneof=AVAILABLE OCCUPIED RESERVED"`
}

type tableStatusInput struct {
	BookingStatus models.TableStatus `json:"booking_status" validate:"oneof=AVAILABLE OCCUPIED RESERVED"`
}

type TableService struct {
	db     *gorm.DB
	events EventPublisher
}

func NewTableService(db *gorm.DB, events EventPublisher) *TableService {
	return &TableService{db: db, events: publisherOrNop(events)}
}

// AddTable inserts a table. An empty status defaults to AVAILABLE.
func (s *TableService) AddTable(ctx context.Context, capacity int, status models.TableStatus) (uint, error) {
	if status == "" {
		status = models.TableAvailable
	}
	if err := validateStruct(tableInput{SeatingCapacity: capacity, BookingStatus: status}); err != nil {
		return 0, err
	}

	table := models.Table{SeatingCapacity: capacity, BookingStatus: status}
	if err := s.db.WithContext(ctx).Create(&table).Error; err != nil {
		return 0, classifyError(err)
	}

	utils.InfoLogger.WithField("table_id", table.ID).Info("Table added")
	return table.ID, nil
}

func (s *TableService) GetAllTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.WithContext(ctx).Order("id").Find(&tables).Error; err != nil {
		return nil, classifyError(err)
	}
	return tables, nil
}

func (s *TableService) UpdateTableStatus(ctx context.Context, id uint, status models.TableStatus) error {
	if err := validateStruct(tableStatusInput{BookingStatus: status}); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var table models.Table
	if err := db.First(&table, id).Error; err != nil {
		return lookupError("table", id, err)
	}
	if err := db.Model(&table).Update("booking_status", status).Error; err != nil {
		return classifyError(err)
	}
	table.BookingStatus = status

	utils.InfoLogger.WithField("table_id", id).Infof("Table status set to %s", status)
	s.events.Publish(EventTableUpdate, table)
	return nil
}
