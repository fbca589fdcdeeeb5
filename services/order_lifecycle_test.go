package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-manager/models"
)

type lifecycleFixture struct {
	lifecycle *OrderLifecycle
	events    *recordingPublisher
	customer  uint
	table     uint
	burger    uint
	soda      uint
}

func newLifecycleFixture(t *testing.T, opts ...LifecycleOption) (*lifecycleFixture, func() []models.Order) {
	t.Helper()
	db := setupTestDB(t)
	events := &recordingPublisher{}
	opts = append([]LifecycleOption{WithEventPublisher(events), WithClock(func() time.Time { return fixedNow })}, opts...)

	f := &lifecycleFixture{
		lifecycle: NewOrderLifecycle(db, opts...),
		events:    events,
		customer:  seedCustomer(t, db, "Jane", "Doe"),
		table:     seedTable(t, db, 4, models.TableAvailable),
		burger:    seedMenuItem(t, db, "Burger", models.CategoryMainCourse, "12.99"),
		soda:      seedMenuItem(t, db, "Soda", models.CategoryBeverage, "5.99"),
	}
	orders := func() []models.Order {
		var out []models.Order
		require.NoError(t, db.Preload("Items").Order("id").Find(&out).Error)
		return out
	}
	return f, orders
}

func TestCreateOrder_ComputesTotalAndOccupiesTable(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db
	ctx := context.Background()

	id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 2},
		{MenuItemID: f.soda, Quantity: 1},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	all := orders()
	require.Len(t, all, 1)
	order := all[0]
	assert.Equal(t, id, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(dec("31.97")), "total %s", order.TotalAmount)
	assert.True(t, order.OrderedAt.Equal(fixedNow))

	require.Len(t, order.Items, 2)
	lineSum := dec("0")
	for _, it := range order.Items {
		lineSum = lineSum.Add(it.ItemTotal)
		switch it.MenuItemID {
		case f.burger:
			assert.Equal(t, 2, it.Quantity)
			assert.True(t, it.ItemTotal.Equal(dec("25.98")))
		case f.soda:
			assert.Equal(t, 1, it.Quantity)
			assert.True(t, it.ItemTotal.Equal(dec("5.99")))
		}
	}
	assert.True(t, lineSum.Equal(order.TotalAmount))

	assert.Equal(t, models.TableOccupied, tableStatus(t, db, f.table))
	assert.Equal(t, []string{EventOrderCreated, EventTableUpdate}, f.events.names())
}

func TestCreateOrder_UnknownMenuItemRollsBack(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db

	_, err := f.lifecycle.CreateOrder(context.Background(), f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 1},
		{MenuItemID: 9999, Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, orders())
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))
	assert.Equal(t, models.TableAvailable, tableStatus(t, db, f.table))
	assert.Empty(t, f.events.names())
}

func TestCreateOrder_MissingReferences(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	ctx := context.Background()
	lines := []OrderLine{{MenuItemID: f.burger, Quantity: 1}}

	_, err := f.lifecycle.CreateOrder(ctx, 4242, f.table, lines)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.lifecycle.CreateOrder(ctx, f.customer, 4242, lines)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, orders())
}

func TestCreateOrder_Validation(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		items []OrderLine
		field string
	}{
		{"no items", nil, "items"},
		{"zero quantity", []OrderLine{{MenuItemID: f.burger, Quantity: 0}}, "quantity"},
		{"negative quantity", []OrderLine{{MenuItemID: f.burger, Quantity: -2}}, "quantity"},
		{"missing menu item", []OrderLine{{Quantity: 1}}, "menu_item_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, tt.items)
			var vErr ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.Empty(t, orders())
}

func TestCreateOrder_DuplicateMenuItemRollsBack(t *testing.T) {
	f, orders := newLifecycleFixture(t)

	_, err := f.lifecycle.CreateOrder(context.Background(), f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 1},
		{MenuItemID: f.burger, Quantity: 2},
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Empty(t, orders())
}

func TestCreateOrder_OutOfStockItemRejected(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", f.soda).
		Update("availability", models.MenuItemOutOfStock).Error)

	_, err := f.lifecycle.CreateOrder(context.Background(), f.customer, f.table, []OrderLine{
		{MenuItemID: f.soda, Quantity: 1},
	})
	var vErr ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "items", vErr.Field)
	assert.Empty(t, orders())
}

func TestCreateOrder_OccupiedTableStillAccepted(t *testing.T) {
	f, _ := newLifecycleFixture(t)
	db := f.lifecycle.db
	require.NoError(t, db.Model(&models.Table{}).Where("id = ?", f.table).
		Update("booking_status", models.TableOccupied).Error)

	_, err := f.lifecycle.CreateOrder(context.Background(), f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, tableStatus(t, db, f.table))
}

func TestCreateOrder_LineTotalsSnapshotPrice(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db

	_, err := f.lifecycle.CreateOrder(context.Background(), f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 3},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", f.burger).
		Update("price", dec("20.00")).Error)

	order := orders()[0]
	assert.True(t, order.TotalAmount.Equal(dec("38.97")))
	assert.True(t, order.Items[0].ItemTotal.Equal(dec("38.97")))
}

func TestProcessPayment_CompletesOrderAndFreesTable(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db
	ctx := context.Background()

	id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{
		{MenuItemID: f.burger, Quantity: 2},
		{MenuItemID: f.soda, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, f.lifecycle.ProcessPayment(ctx, id, models.PaymentCard, dec("31.97")))

	assert.Equal(t, models.OrderCompleted, orders()[0].Status)
	assert.Equal(t, models.TableAvailable, tableStatus(t, db, f.table))

	var payments []models.Payment
	require.NoError(t, db.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, id, payments[0].OrderID)
	assert.Equal(t, models.PaymentCard, payments[0].PaymentMode)
	assert.True(t, payments[0].AmountPaid.Equal(dec("31.97")))
	assert.True(t, payments[0].PaidAt.Equal(fixedNow))

	assert.Equal(t, []string{
		EventOrderCreated, EventTableUpdate,
		EventPaymentProcessed, EventTableUpdate,
	}, f.events.names())

	freed := lastTableUpdate(t, f.events)
	assert.Equal(t, f.table, freed.ID)
	assert.Equal(t, models.TableAvailable, freed.BookingStatus)
	assert.Equal(t, 4, freed.SeatingCapacity)
	assert.False(t, freed.CreatedAt.IsZero())
}

func lastTableUpdate(t *testing.T, events *recordingPublisher) models.Table {
	t.Helper()
	events.mu.Lock()
	defer events.mu.Unlock()
	for i := len(events.events) - 1; i >= 0; i-- {
		if events.events[i].Name == EventTableUpdate {
			table, ok := events.events[i].Data.(models.Table)
			require.True(t, ok, "table_update carried %T", events.events[i].Data)
			return table
		}
	}
	t.Fatal("no table_update event published")
	return models.Table{}
}

func TestProcessPayment_MissingOrderWritesNothing(t *testing.T) {
	f, _ := newLifecycleFixture(t)
	db := f.lifecycle.db

	err := f.lifecycle.ProcessPayment(context.Background(), 777, models.PaymentCash, dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, db, &models.Payment{}))
}

func TestProcessPayment_Validation(t *testing.T) {
	f, _ := newLifecycleFixture(t)
	ctx := context.Background()
	id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{{MenuItemID: f.soda, Quantity: 1}})
	require.NoError(t, err)

	var vErr ValidationError
	err = f.lifecycle.ProcessPayment(ctx, id, models.PaymentMode("CHEQUE"), dec("5.99"))
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "payment_mode", vErr.Field)

	err = f.lifecycle.ProcessPayment(ctx, id, models.PaymentCash, dec("-1"))
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "amount", vErr.Field)

	assert.Zero(t, countRows(t, f.lifecycle.db, &models.Payment{}))
}

func TestProcessPayment_Policies(t *testing.T) {
	tests := []struct {
		name    string
		policy  PaymentPolicy
		amount  string
		wantErr bool
	}{
		{"none accepts short amount", PaymentCheckNone, "1.00", false},
		{"exact accepts total", PaymentCheckExact, "5.99", false},
		{"exact rejects overpay", PaymentCheckExact, "6.00", true},
		{"minimum accepts overpay", PaymentCheckMinimum, "10.00", false},
		{"minimum rejects short amount", PaymentCheckMinimum, "5.98", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, orders := newLifecycleFixture(t, WithPaymentPolicy(tt.policy))
			ctx := context.Background()
			id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{{MenuItemID: f.soda, Quantity: 1}})
			require.NoError(t, err)

			err = f.lifecycle.ProcessPayment(ctx, id, models.PaymentUPI, dec(tt.amount))
			if tt.wantErr {
				var vErr ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, models.OrderPending, orders()[0].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.OrderCompleted, orders()[0].Status)
		})
	}
}

func TestParsePaymentPolicy(t *testing.T) {
	p, err := ParsePaymentPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCheckNone, p)

	p, err = ParsePaymentPolicy(" Exact ")
	require.NoError(t, err)
	assert.Equal(t, PaymentCheckExact, p)

	_, err = ParsePaymentPolicy("strict")
	assert.Error(t, err)
}

func TestCancelOrder(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	db := f.lifecycle.db
	ctx := context.Background()

	id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{{MenuItemID: f.burger, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, f.lifecycle.CancelOrder(ctx, id))
	assert.Equal(t, models.OrderCancelled, orders()[0].Status)
	assert.Equal(t, models.TableAvailable, tableStatus(t, db, f.table))
	assert.Contains(t, f.events.names(), EventOrderCancelled)
	freed := lastTableUpdate(t, f.events)
	assert.Equal(t, models.TableAvailable, freed.BookingStatus)
	assert.Equal(t, 4, freed.SeatingCapacity)

	var vErr ValidationError
	err = f.lifecycle.CancelOrder(ctx, id)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Field)

	assert.ErrorIs(t, f.lifecycle.CancelOrder(ctx, 999), ErrNotFound)
}

func TestCancelOrder_CompletedOrderRejected(t *testing.T) {
	f, orders := newLifecycleFixture(t)
	ctx := context.Background()

	id, err := f.lifecycle.CreateOrder(ctx, f.customer, f.table, []OrderLine{{MenuItemID: f.soda, Quantity: 2}})
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.ProcessPayment(ctx, id, models.PaymentCash, dec("11.98")))

	var vErr ValidationError
	require.True(t, errors.As(f.lifecycle.CancelOrder(ctx, id), &vErr))
	assert.Equal(t, models.OrderCompleted, orders()[0].Status)
}
