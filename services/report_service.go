package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/models"
)

type RevenuePeriod string

const (
	PeriodLast7Days  RevenuePeriod = "Last 7 Days"
	PeriodLast30Days RevenuePeriod = "Last 30 Days"
	PeriodLast90Days RevenuePeriod = "Last 90 Days"
)

var periodDays = map[RevenuePeriod]int{
	PeriodLast7Days:  7,
	PeriodLast30Days: 30,
	PeriodLast90Days: 90,
}

func (p RevenuePeriod) Days() (int, error) {
	days, ok := periodDays[p]
	if !ok {
		return 0, ValidationError{
			Field:   "period",
			Message: fmt.Sprintf("must be one of [%s %s %s]", PeriodLast7Days, PeriodLast30Days, PeriodLast90Days),
		}
	}
	return days, nil
}

// RevenueMetrics compares the payments of the last N days with the N days before.
type RevenueMetrics struct {
	Period           RevenuePeriod   `json:"period"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Total            decimal.Decimal `json:"total"`
	PreviousTotal    decimal.Decimal `json:"previous_total"`
	ChangePercent    decimal.Decimal `json:"change"`
	PaymentCount     int             `json:"payment_count"`
	PreviousPayments int             `json:"previous_payment_count"`
}

type SalesRow struct {
	OrderID      uint               `json:"order_id"`
	Reference    string             `json:"reference"`
	Date         time.Time          `json:"date"`
	CustomerName string             `json:"customer"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	PaymentMode  models.PaymentMode `json:"payment_mode"`
	AmountPaid   decimal.Decimal    `json:"amount_paid"`
}

type SalesSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

type SalesReport struct {
	Start   time.Time    `json:"start"`
	End     time.Time    `json:"end"`
	Rows    []SalesRow   `json:"rows"`
	Summary SalesSummary `json:"summary"`
}

type MenuPerformanceRow struct {
	MenuItemID   uint                `json:"menu_item_id"`
	Name         string              `json:"name"`
	Category     models.MenuCategory `json:"category"`
	QuantitySold int                 `json:"quantity_sold"`
	Revenue      decimal.Decimal     `json:"revenue"`
}

type DashboardSummary struct {
	AvailableTables int64           `json:"available_tables"`
	TotalTables     int64           `json:"total_tables"`
	ActiveOrders    int64           `json:"active_orders"`
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodayOrders     int             `json:"today_orders"`
}

// ReportService is read-only. Rows are filtered in SQL and summed in Go so
// money stays exact on every driver.
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

// WithClock replaces the report clock, mainly for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *ReportService) GetRevenueMetrics(ctx context.Context, period RevenuePeriod) (*RevenueMetrics, error) {
	days, err := period.Days()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	window := time.Duration(days) * 24 * time.Hour
	from := now.Add(-window)
	prevFrom := from.Add(-window)

	db := s.db.WithContext(ctx)
	var current []decimal.Decimal
	if err := db.Model(&models.Payment{}).
		Where("paid_at >= ? AND paid_at <= ?", from, now).
		Pluck("amount_paid", &current).Error; err != nil {
		return nil, classifyError(err)
	}
	var previous []decimal.Decimal
	if err := db.Model(&models.Payment{}).
		Where("paid_at >= ? AND paid_at < ?", prevFrom, from).
		Pluck("amount_paid", &previous).Error; err != nil {
		return nil, classifyError(err)
	}

	total := sumDecimals(current)
	prevTotal := sumDecimals(previous)
	return &RevenueMetrics{
		Period:           period,
		From:             from,
		To:               now,
		Total:            total,
		PreviousTotal:    prevTotal,
		ChangePercent:    growthPercent(total, prevTotal),
		PaymentCount:     len(current),
		PreviousPayments: len(previous),
	}, nil
}

// growthPercent returns the change from prev to cur in percent. Growth from
// nothing counts as 100.
func growthPercent(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if cur.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

type salesRecord struct {
	OrderID     uint
	OrderedAt   time.Time
	FirstName   string
	MiddleName  *string
	LastName    string
	TotalAmount decimal.Decimal
	PaymentMode models.PaymentMode
	AmountPaid  decimal.Decimal
}

// GetSalesReport lists the payments of orders placed between start and end,
// both dates inclusive.
func (s *ReportService) GetSalesReport(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}

	var records []salesRecord
	err = s.db.WithContext(ctx).
		Table("payments").
		Select("payments.order_id, orders.ordered_at, customers.first_name, customers.middle_name, customers.last_name, " +
			"orders.total_amount, payments.payment_mode, payments.amount_paid").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.ordered_at >= ? AND orders.ordered_at < ?", from, to).
		Order("orders.ordered_at, payments.order_id, payments.id").
		Scan(&records).Error
	if err != nil {
		return nil, classifyError(err)
	}

	report := &SalesReport{Start: from, End: to.Add(-24 * time.Hour), Rows: make([]SalesRow, 0, len(records))}
	revenue := decimal.Zero
	for _, r := range records {
		order := models.Order{ID: r.OrderID, OrderedAt: r.OrderedAt}
		customer := models.Customer{FirstName: r.FirstName, MiddleName: r.MiddleName, LastName: r.LastName}
		report.Rows = append(report.Rows, SalesRow{
			OrderID:      r.OrderID,
			Reference:    order.Reference(),
			Date:         r.OrderedAt,
			CustomerName: customer.FullName(),
			TotalAmount:  r.TotalAmount,
			PaymentMode:  r.PaymentMode,
			AmountPaid:   r.AmountPaid,
		})
		revenue = revenue.Add(r.AmountPaid)
	}

	report.Summary = SalesSummary{
		TotalRevenue:      revenue,
		TotalOrders:       len(report.Rows),
		AverageOrderValue: decimal.Zero,
	}
	if len(report.Rows) > 0 {
		report.Summary.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(report.Rows)))).Round(2)
	}
	return report, nil
}

type menuSale struct {
	MenuItemID uint
	Name       string
	Category   models.MenuCategory
	Quantity   int
	ItemTotal  decimal.Decimal
}

// GetMenuPerformance totals quantity and revenue per menu item over the
// non-cancelled orders placed between start and end.
func (s *ReportService) GetMenuPerformance(ctx context.Context, start, end time.Time) ([]MenuPerformanceRow, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}

	var sales []menuSale
	err = s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_item_id, menu_items.name, menu_items.category, order_items.quantity, order_items.item_total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.status <> ?", models.OrderCancelled).
		Where("orders.ordered_at >= ? AND orders.ordered_at < ?", from, to).
		Scan(&sales).Error
	if err != nil {
		return nil, classifyError(err)
	}

	byItem := make(map[uint]*MenuPerformanceRow)
	for _, sale := range sales {
		row, ok := byItem[sale.MenuItemID]
		if !ok {
			row = &MenuPerformanceRow{
				MenuItemID: sale.MenuItemID,
				Name:       sale.Name,
				Category:   sale.Category,
				Revenue:    decimal.Zero,
			}
			byItem[sale.MenuItemID] = row
		}
		row.QuantitySold += sale.Quantity
		row.Revenue = row.Revenue.Add(sale.ItemTotal)
	}

	rows := make([]MenuPerformanceRow, 0, len(byItem))
	for _, row := range byItem {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (s *ReportService) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &DashboardSummary{}

	if err := db.Model(&models.Table{}).Count(&summary.TotalTables).Error; err != nil {
		return nil, classifyError(err)
	}
	if err := db.Model(&models.Table{}).
		Where("booking_status = ?", models.TableAvailable).
		Count(&summary.AvailableTables).Error; err != nil {
		return nil, classifyError(err)
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).
		Count(&summary.ActiveOrders).Error; err != nil {
		return nil, classifyError(err)
	}

	today := truncateDay(s.now().UTC())
	var totals []decimal.Decimal
	if err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderCancelled).
		Where("ordered_at >= ? AND ordered_at < ?", today, today.Add(24*time.Hour)).
		Pluck("total_amount", &totals).Error; err != nil {
		return nil, classifyError(err)
	}
	summary.TodayRevenue = sumDecimals(totals)
	summary.TodayOrders = len(totals)
	return summary, nil
}

// dateRange turns inclusive calendar dates into a half-open UTC interval.
func dateRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, ValidationError{Field: "start", Message: "start and end dates are required"}
	}
	from := truncateDay(start.UTC())
	to := truncateDay(end.UTC())
	if to.Before(from) {
		return time.Time{}, time.Time{}, ValidationError{Field: "end", Message: "must not be before start"}
	}
	return from, to.Add(24 * time.Hour), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
