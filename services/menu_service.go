package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

type NewMenuItem struct {
	Name         string              `json:"name" validate:"required,max=255"`
	Category     models.MenuCategory `json:"category" validate:"oneof=STARTER 'MAIN COURSE' DESSERT BEVERAGE"`
	Price        decimal.Decimal     `json:"price"`
	Availability models.Availability `json:"availability" validate:"omitempty,oneof=AVAILABLE 'OUT OF STOCK'"`
}

type availabilityInput struct {
	Availability models.Availability `json:"availability" validate:"oneof=AVAILABLE 'OUT OF STOCK'"`
}

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

func (s *MenuService) AddMenuItem(ctx context.Context, in NewMenuItem) (uint, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = in.Price.Round(2)
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if err := validatePositive("price", in.Price); err != nil {
		return 0, err
	}
	if in.Availability == "" {
		in.Availability = models.MenuItemAvailable
	}

	item := models.MenuItem{
		Name:         in.Name,
		Category:     in.Category,
		Price:        in.Price,
		Availability: in.Availability,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, classifyError(err)
	}

	utils.InfoLogger.WithField("menu_item_id", item.ID).Infof("Menu item %q added", item.Name)
	return item.ID, nil
}

func (s *MenuService) GetAllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, classifyError(err)
	}
	return items, nil
}

// GetAvailableMenuItems lists what can be ordered right now.
func (s *MenuService) GetAvailableMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("availability = ?", models.MenuItemAvailable).
		Order("category, name").
		Find(&items).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return items, nil
}

func (s *MenuService) UpdateMenuItemAvailability(ctx context.Context, id uint, availability models.Availability) error {
	if err := validateStruct(availabilityInput{Availability: availability}); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return lookupError("menu item", id, err)
	}
	if err := db.Model(&item).Update("availability", availability).Error; err != nil {
		return classifyError(err)
	}

	utils.InfoLogger.WithField("menu_item_id", id).Infof("Menu item marked %s", availability)
	return nil
}
