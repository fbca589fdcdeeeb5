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

func strPtr(s string) *string { return &s }

func TestCustomerService(t *testing.T) {
	db := setupTestDB(t)
	customers := NewCustomerService(db)
	ctx := context.Background()

	id, err := customers.AddCustomer(ctx, NewCustomer{
		FirstName:  " Jane ",
		MiddleName: strPtr(""),
		LastName:   "Doe",
		Phone:      strPtr("555-0100"),
		Email:      strPtr("jane@example.com"),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = customers.AddCustomer(ctx, NewCustomer{FirstName: "John", LastName: "Roe", Phone: strPtr("555-0100")})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = customers.AddCustomer(ctx, NewCustomer{FirstName: "No", LastName: "Phone", Phone: strPtr("  ")})
	require.NoError(t, err)
	_, err = customers.AddCustomer(ctx, NewCustomer{FirstName: "Also", LastName: "NoPhone"})
	require.NoError(t, err)

	all, err := customers.GetAllCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Jane Doe", all[0].FullName())
	assert.Nil(t, all[0].MiddleName)
	assert.Nil(t, all[1].Phone)
}

func TestCustomerService_Validation(t *testing.T) {
	customers := NewCustomerService(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		in    NewCustomer
		field string
	}{
		{"missing first name", NewCustomer{LastName: "Doe"}, "first_name"},
		{"missing last name", NewCustomer{FirstName: "Jane"}, "last_name"},
		{"bad email", NewCustomer{FirstName: "Jane", LastName: "Doe", Email: strPtr("nope")}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := customers.AddCustomer(ctx, tt.in)
			var vErr ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestTableService(t *testing.T) {
	db := setupTestDB(t)
	events := &recordingPublisher{}
	tables := NewTableService(db, events)
	ctx := context.Background()

	id, err := tables.AddTable(ctx, 4, "")
	require.NoError(t, err)
	_, err = tables.AddTable(ctx, 2, models.TableReserved)
	require.NoError(t, err)

	var vErr ValidationError
	_, err = tables.AddTable(ctx, 0, models.TableAvailable)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "seating_capacity", vErr.Field)
	_, err = tables.AddTable(ctx, 2, models.TableStatus("BROKEN"))
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "booking_status", vErr.Field)

	require.NoError(t, tables.UpdateTableStatus(ctx, id, models.TableReserved))
	assert.Equal(t, models.TableReserved, tableStatus(t, db, id))
	assert.Equal(t, []string{EventTableUpdate}, events.names())

	assert.ErrorIs(t, tables.UpdateTableStatus(ctx, 999, models.TableAvailable), ErrNotFound)
	require.True(t, errors.As(tables.UpdateTableStatus(ctx, id, models.TableStatus("GONE")), &vErr))

	all, err := tables.GetAllTables(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.TableReserved, all[0].BookingStatus)
	assert.Equal(t, 2, all[1].SeatingCapacity)
}

func TestMenuService(t *testing.T) {
	menu := NewMenuService(setupTestDB(t))
	ctx := context.Background()

	soupID, err := menu.AddMenuItem(ctx, NewMenuItem{Name: "Soup", Category: models.CategoryStarter, Price: dec("4.50")})
	require.NoError(t, err)
	_, err = menu.AddMenuItem(ctx, NewMenuItem{Name: "Steak", Category: models.CategoryMainCourse, Price: dec("24.00")})
	require.NoError(t, err)

	var vErr ValidationError
	_, err = menu.AddMenuItem(ctx, NewMenuItem{Name: "Free", Category: models.CategoryStarter, Price: dec("0")})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "price", vErr.Field)
	_, err = menu.AddMenuItem(ctx, NewMenuItem{Name: "Crumb", Category: models.CategoryStarter, Price: dec("0.004")})
	require.True(t, errors.As(err, &vErr), "got %v", err)
	assert.Equal(t, "price", vErr.Field)
	_, err = menu.AddMenuItem(ctx, NewMenuItem{Name: "Snack", Category: models.MenuCategory("SNACK"), Price: dec("1")})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "category", vErr.Field)

	require.NoError(t, menu.UpdateMenuItemAvailability(ctx, soupID, models.MenuItemOutOfStock))
	assert.ErrorIs(t, menu.UpdateMenuItemAvailability(ctx, 404, models.MenuItemAvailable), ErrNotFound)

	all, err := menu.GetAllMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := menu.GetAvailableMenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Steak", available[0].Name)
	assert.Equal(t, models.CategoryMainCourse, available[0].Category)
}

func TestOrderService(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	ctx := context.Background()
	clock := fixedNow
	lifecycle := NewOrderLifecycle(db, WithClock(func() time.Time { return clock }))

	customer := seedCustomer(t, db, "Jane", "Doe")
	table := seedTable(t, db, 4, models.TableAvailable)
	burger := seedMenuItem(t, db, "Burger", models.CategoryMainCourse, "12.99")
	soda := seedMenuItem(t, db, "Soda", models.CategoryBeverage, "5.99")

	first, err := lifecycle.CreateOrder(ctx, customer, table, []OrderLine{
		{MenuItemID: soda, Quantity: 1},
		{MenuItemID: burger, Quantity: 2},
	})
	require.NoError(t, err)
	clock = fixedNow.Add(time.Hour)
	second, err := lifecycle.CreateOrder(ctx, customer, table, []OrderLine{{MenuItemID: soda, Quantity: 3}})
	require.NoError(t, err)
	require.NoError(t, lifecycle.ProcessPayment(ctx, first, models.PaymentCash, dec("31.97")))

	details, err := orders.GetOrderDetails(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", details.CustomerName)
	assert.Equal(t, table, details.Table.ID)
	assert.Equal(t, models.OrderCompleted, details.Status)
	assert.True(t, details.TotalAmount.Equal(dec("31.97")))
	assert.Equal(t, "ORD-20240315-000001", details.Reference)
	require.Len(t, details.Items, 2)
	assert.Equal(t, "Burger", details.Items[0].Name)
	assert.Equal(t, 2, details.Items[0].Quantity)
	assert.Equal(t, "Soda", details.Items[1].Name)

	_, err = orders.GetOrderDetails(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := orders.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)

	pending, err := orders.GetPendingOrders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second, pending[0].ID)
	assert.True(t, pending[0].TotalAmount.Equal(dec("17.97")))

	completed, err := orders.GetOrdersByStatus(ctx, models.OrderCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	_, err = orders.GetOrdersByStatus(ctx, models.OrderStatus("LOST"))
	var vErr ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestReservationService(t *testing.T) {
	db := setupTestDB(t)
	reservations := NewReservationService(db)
	ctx := context.Background()
	customer := seedCustomer(t, db, "Ann", "Lee")
	table := seedTable(t, db, 4, models.TableAvailable)
	when := fixedNow.Add(48 * time.Hour)

	id, err := reservations.AddReservation(ctx, NewReservation{CustomerID: customer, TableID: table, ReservedFor: when, NumberOfPeople: 4})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, models.TableAvailable, tableStatus(t, db, table))

	_, err = reservations.AddReservation(ctx, NewReservation{CustomerID: customer, TableID: table, ReservedFor: when, NumberOfPeople: 5})
	var vErr ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "number_of_people", vErr.Field)

	_, err = reservations.AddReservation(ctx, NewReservation{CustomerID: 99, TableID: table, ReservedFor: when, NumberOfPeople: 2})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reservations.AddReservation(ctx, NewReservation{CustomerID: customer, TableID: table, NumberOfPeople: 2})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "reserved_for", vErr.Field)

	all, err := reservations.GetAllReservations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].ReservedFor.Equal(when))
}

func TestStaffService(t *testing.T) {
	db := setupTestDB(t)
	staff := NewStaffService(db)
	ctx := context.Background()

	start := fixedNow
	end := fixedNow.Add(8 * time.Hour)
	waiter, err := staff.AddStaff(ctx, NewStaff{FirstName: "Sam", LastName: "Poe", Role: models.RoleWaiter, ShiftStart: &start, ShiftEnd: &end})
	require.NoError(t, err)

	var vErr ValidationError
	_, err = staff.AddStaff(ctx, NewStaff{FirstName: "Al", LastName: "Bo", Role: models.StaffRole("HOST")})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "role", vErr.Field)
	_, err = staff.AddStaff(ctx, NewStaff{FirstName: "Al", LastName: "Bo", Role: models.RoleChef, ShiftStart: &end, ShiftEnd: &start})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "shift_end", vErr.Field)

	customer := seedCustomer(t, db, "Ann", "Lee")
	table := seedTable(t, db, 2, models.TableAvailable)
	soup := seedMenuItem(t, db, "Soup", models.CategoryStarter, "4.00")
	orderID, err := NewOrderLifecycle(db).CreateOrder(ctx, customer, table, []OrderLine{{MenuItemID: soup, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, staff.AssignStaff(ctx, waiter, orderID, "server"))
	assert.ErrorIs(t, staff.AssignStaff(ctx, waiter, orderID, "server"), ErrConstraintViolation)
	assert.ErrorIs(t, staff.AssignStaff(ctx, 999, orderID, ""), ErrNotFound)
	assert.ErrorIs(t, staff.AssignStaff(ctx, waiter, 999, ""), ErrNotFound)

	assignments, err := staff.GetAssignments(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "server", assignments[0].RoleInOrder)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderPending, order.Status)

	all, err := staff.GetAllStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
