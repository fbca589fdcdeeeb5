package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/models"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(&config.Config{
		DBDriver:       "sqlite",
		DBDSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBMaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.NewSchemaManager(db).EnsureSchema(context.Background()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type publishedEvent struct {
	Name string
	Data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Name: event, Data: data})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}

func seedCustomer(t *testing.T, db *gorm.DB, first, last string) uint {
	t.Helper()
	c := models.Customer{FirstName: first, LastName: last}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func seedTable(t *testing.T, db *gorm.DB, capacity int, status models.TableStatus) uint {
	t.Helper()
	tbl := models.Table{SeatingCapacity: capacity, BookingStatus: status}
	require.NoError(t, db.Create(&tbl).Error)
	return tbl.ID
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, category models.MenuCategory, price string) uint {
	t.Helper()
	item := models.MenuItem{
		Name:         name,
		Category:     category,
		Price:        decimal.RequireFromString(price),
		Availability: models.MenuItemAvailable,
	}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

func tableStatus(t *testing.T, db *gorm.DB, id uint) models.TableStatus {
	t.Helper()
	var tbl models.Table
	require.NoError(t, db.First(&tbl, id).Error)
	return tbl.BookingStatus
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
