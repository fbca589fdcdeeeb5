package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
)

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID           uint               `json:"id"`
	Reference    string             `json:"reference"`
	CustomerID   uint               `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	TableID      uint               `json:"table_id"`
	OrderedAt    time.Time          `json:"ordered_at"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       models.OrderStatus `json:"status"`
}

type OrderItemView struct {
	MenuItemID uint                `json:"menu_item_id"`
	Name       string              `json:"name"`
	Category   models.MenuCategory `json:"category"`
	Quantity   int                 `json:"quantity"`
	ItemTotal  decimal.Decimal     `json:"item_total"`
}

// OrderDetails is an order with its table and priced lines.
type OrderDetails struct {
	OrderSummary
	Table models.Table    `json:"table"`
	Items []OrderItemView `json:"items"`
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) GetOrderDetails(ctx context.Context, id uint) (*OrderDetails, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Table").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_item_id")
		}).
		Preload("Items.MenuItem").
		First(&order, id).Error
	if err != nil {
		return nil, lookupError("order", id, err)
	}

	details := &OrderDetails{
		OrderSummary: summarize(order),
		Table:        order.Table,
		Items:        make([]OrderItemView, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		details.Items = append(details.Items, OrderItemView{
			MenuItemID: it.MenuItemID,
			Name:       it.MenuItem.Name,
			Category:   it.MenuItem.Category,
			Quantity:   it.Quantity,
			ItemTotal:  it.ItemTotal,
		})
	}
	return details, nil
}

// GetAllOrders lists every order, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]OrderSummary, error) {
	return s.listOrders(ctx, "")
}

// GetPendingOrders lists orders still awaiting payment, newest first.
func (s *OrderService) GetPendingOrders(ctx context.Context) ([]OrderSummary, error) {
	return s.listOrders(ctx, models.OrderPending)
}

// GetOrdersByStatus filters by status; an empty status lists everything.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]OrderSummary, error) {
	if status != "" {
		if err := validateStruct(orderStatusInput{Status: status}); err != nil {
			return nil, err
		}
	}
	return s.listOrders(ctx, status)
}

type orderStatusInput struct {
	Status models.OrderStatus `json:"status" validate:"oneof=PENDING COMPLETED CANCELLED"`
}

func (s *OrderService) listOrders(ctx context.Context, status models.OrderStatus) ([]OrderSummary, error) {
	query := s.db.WithContext(ctx).Preload("Customer").Order("ordered_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, classifyError(err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, summarize(o))
	}
	return summaries, nil
}

func summarize(o models.Order) OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		Reference:    o.Reference(),
		CustomerID:   o.CustomerID,
		CustomerName: o.Customer.FullName(),
		TableID:      o.TableID,
		OrderedAt:    o.OrderedAt,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
	}
}
