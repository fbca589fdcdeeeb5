package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
)

// PaymentPolicy decides how a paid amount is checked against the order total.
type PaymentPolicy string

const (
	// PaymentCheckNone records whatever amount the caller supplies.
	PaymentCheckNone PaymentPolicy = "none"
	// PaymentCheckExact requires the amount to equal the order total.
	PaymentCheckExact PaymentPolicy = "exact"
	// PaymentCheckMinimum requires the amount to cover the order total.
	PaymentCheckMinimum PaymentPolicy = "minimum"
)

func ParsePaymentPolicy(s string) (PaymentPolicy, error) {
	switch p := PaymentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PaymentCheckNone, nil
	case PaymentCheckNone, PaymentCheckExact, PaymentCheckMinimum:
		return p, nil
	default:
		return "", fmt.Errorf("unknown payment amount check %q", s)
	}
}

// OrderLine is one requested menu item and its quantity.
type OrderLine struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"gt=0"`
}

type createOrderInput struct {
	CustomerID uint        `json:"customer_id" validate:"required"`
	TableID    uint        `json:"table_id" validate:"required"`
	Items      []OrderLine `json:"items" validate:"min=1,dive"`
}

type paymentInput struct {
	OrderID     uint               `json:"order_id" validate:"required"`
	PaymentMode models.PaymentMode `json:"payment_mode" validate:"oneof=CASH CARD UPI"`
}

// OrderLifecycle owns the multi-step writes of an order: creation with
// itemization, payment and cancellation. Each runs in one transaction.
type OrderLifecycle struct {
	db     *gorm.DB
	events EventPublisher
	policy PaymentPolicy
	now    func() time.Time
}

type LifecycleOption func(*OrderLifecycle)

func WithEventPublisher(p EventPublisher) LifecycleOption {
	return func(l *OrderLifecycle) {
		l.events = publisherOrNop(p)
	}
}

func WithPaymentPolicy(p PaymentPolicy) LifecycleOption {
	return func(l *OrderLifecycle) {
		if p != "" {
			l.policy = p
		}
	}
}

func WithClock(now func() time.Time) LifecycleOption {
	return func(l *OrderLifecycle) {
		if now != nil {
			l.now = now
		}
	}
}

func NewOrderLifecycle(db *gorm.DB, opts ...LifecycleOption) *OrderLifecycle {
	l := &OrderLifecycle{
		db:     db,
		events: nopPublisher{},
		policy: PaymentCheckNone,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *OrderLifecycle) Policy() PaymentPolicy {
	return l.policy
}

// CreateOrder inserts a PENDING order for the customer at the table, prices
// every line from the current menu, stores the summed total and marks the
// table OCCUPIED. On any failure nothing is written.
func (l *OrderLifecycle) CreateOrder(ctx context.Context, customerID, tableID uint, items []OrderLine) (uint, error) {
	if err := validateStruct(createOrderInput{CustomerID: customerID, TableID: tableID, Items: items}); err != nil {
		return 0, err
	}

	var order models.Order
	var table models.Table
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, customerID).Error; err != nil {
			return lookupError("customer", customerID, err)
		}
		if err := tx.First(&table, tableID).Error; err != nil {
			return lookupError("table", tableID, err)
		}
		if table.BookingStatus != models.TableAvailable {
			utils.InfoLogger.WithFields(logrus.Fields{
				"table_id": table.ID,
				"status":   table.BookingStatus,
			}).Warn("Creating order on a table that is not available")
		}

		order = models.Order{
			CustomerID:  customerID,
			TableID:     tableID,
			OrderedAt:   l.now().UTC(),
			TotalAmount: decimal.Zero,
			Status:      models.OrderPending,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return classifyError(err)
		}

		total := decimal.Zero
		for _, line := range items {
			var item models.MenuItem
			if err := tx.First(&item, line.MenuItemID).Error; err != nil {
				return lookupError("menu item", line.MenuItemID, err)
			}
			if item.Availability != models.MenuItemAvailable {
				return ValidationError{
					Field:   "items",
					Message: fmt.Sprintf("menu item %d (%s) is %s", item.ID, item.Name, item.Availability),
				}
			}

			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   line.Quantity,
				ItemTotal:  lineTotal,
			}
			if err := tx.Omit(clause.Associations).Create(&orderItem).Error; err != nil {
				return classifyError(err)
			}
		}

		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return classifyError(err)
		}
		order.TotalAmount = total

		if err := tx.Model(&table).Update("booking_status", models.TableOccupied).Error; err != nil {
			return classifyError(err)
		}
		table.BookingStatus = models.TableOccupied
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"customer_id": customerID,
			"table_id":    tableID,
		}).Errorf("Create order rolled back: %v", err)
		return 0, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"table_id": table.ID,
		"total":    order.TotalAmount.StringFixed(2),
		"items":    len(items),
	}).Info("Order created")

	l.events.Publish(EventOrderCreated, order)
	l.events.Publish(EventTableUpdate, table)
	return order.ID, nil
}

// ProcessPayment records a payment, completes the order and frees its table.
// The order status is not re-checked: a PENDING order is assumed.
func (l *OrderLifecycle) ProcessPayment(ctx context.Context, orderID uint, mode models.PaymentMode, amount decimal.Decimal) error {
	if err := validateStruct(paymentInput{OrderID: orderID, PaymentMode: mode}); err != nil {
		return err
	}
	if err := validateNonNegative("amount", amount); err != nil {
		return err
	}

	var order models.Order
	var payment models.Payment
	var table models.Table
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return lookupError("order", orderID, err)
		}
		if err := l.checkAmount(order.TotalAmount, amount); err != nil {
			return err
		}

		payment = models.Payment{
			OrderID:     order.ID,
			PaidAt:      l.now().UTC(),
			PaymentMode: mode,
			AmountPaid:  amount,
		}
		if err := tx.Omit(clause.Associations).Create(&payment).Error; err != nil {
			return classifyError(err)
		}

		if err := tx.Model(&order).Update("status", models.OrderCompleted).Error; err != nil {
			return classifyError(err)
		}
		order.Status = models.OrderCompleted

		freed, err := freeTable(tx, order.TableID)
		table = freed
		return err
	})
	if err != nil {
		utils.ErrorLogger.WithField("order_id", orderID).Errorf("Payment rolled back: %v", err)
		return err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": payment.ID,
		"mode":       mode,
		"amount":     amount.StringFixed(2),
	}).Info("Payment processed")

	l.events.Publish(EventPaymentProcessed, payment)
	l.events.Publish(EventTableUpdate, table)
	return nil
}

// CancelOrder moves a PENDING order to CANCELLED and frees its table.
func (l *OrderLifecycle) CancelOrder(ctx context.Context, orderID uint) error {
	var order models.Order
	var table models.Table
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return lookupError("order", orderID, err)
		}
		if order.Status != models.OrderPending {
			return ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("order %d is %s and cannot be cancelled", order.ID, order.Status),
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
			return classifyError(err)
		}
		order.Status = models.OrderCancelled

		freed, err := freeTable(tx, order.TableID)
		table = freed
		return err
	})
	if err != nil {
		utils.ErrorLogger.WithField("order_id", orderID).Errorf("Cancel order rolled back: %v", err)
		return err
	}

	utils.InfoLogger.WithField("order_id", order.ID).Info("Order cancelled")

	l.events.Publish(EventOrderCancelled, order)
	l.events.Publish(EventTableUpdate, table)
	return nil
}

func (l *OrderLifecycle) checkAmount(total, amount decimal.Decimal) error {
	switch l.policy {
	case PaymentCheckExact:
		if !amount.Equal(total) {
			return ValidationError{
				Field:   "amount",
				Message: fmt.Sprintf("must equal the order total %s", total.StringFixed(2)),
			}
		}
	case PaymentCheckMinimum:
		if amount.LessThan(total) {
			return ValidationError{
				Field:   "amount",
				Message: fmt.Sprintf("must cover the order total %s", total.StringFixed(2)),
			}
		}
	}
	return nil
}

// freeTable marks the table AVAILABLE and returns the updated row.
func freeTable(tx *gorm.DB, tableID uint) (models.Table, error) {
	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		return table, lookupError("table", tableID, err)
	}
	if err := tx.Model(&table).Update("booking_status", models.TableAvailable).Error; err != nil {
		return table, classifyError(err)
	}
	table.BookingStatus = models.TableAvailable
	return table, nil
}
