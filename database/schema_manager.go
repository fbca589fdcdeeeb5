package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

// Models returns every persisted entity. AutoMigrate reorders them by
// dependency, the order here is only for readability.
func Models() []interface{} {
	return []interface{}{
		&models.Customer{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Reservation{},
		&models.Staff{},
		&models.StaffAssignment{},
	}
}

type indexSpec struct {
	model interface{}
	name  string
}

// Secondary indexes on the foreign-key columns used by lifecycle joins.
var secondaryIndexes = []indexSpec{
	{&models.Order{}, "idx_orders_customer"},
	{&models.Order{}, "idx_orders_table"},
	{&models.OrderItem{}, "idx_order_items_menu_item"},
	{&models.Payment{}, "idx_payments_order"},
	{&models.Reservation{}, "idx_reservations_customer"},
	{&models.Reservation{}, "idx_reservations_table"},
}

// IndexNames lists the secondary indexes EnsureSchema guarantees.
func IndexNames() []string {
	names := make([]string, 0, len(secondaryIndexes))
	for _, idx := range secondaryIndexes {
		names = append(names, idx.name)
	}
	return names
}

type SchemaManager struct {
	db *gorm.DB
}

func NewSchemaManager(db *gorm.DB) *SchemaManager {
	return &SchemaManager{db: db}
}

// EnsureSchema creates missing tables, constraints and indexes. Running it
// against an initialized store changes nothing.
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	migrator := db.Migrator()
	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
		utils.InfoLogger.Printf("Created missing index %s", idx.name)
	}

	utils.InfoLogger.Println("Schema is up to date.")
	return nil
}

type SchemaStatus struct {
	Tables  map[string]bool `json:"tables"`
	Indexes map[string]bool `json:"indexes"`
}

// Complete reports whether every table and secondary index exists.
func (s SchemaStatus) Complete() bool {
	for _, ok := range s.Tables {
		if !ok {
			return false
		}
	}
	for _, ok := range s.Indexes {
		if !ok {
			return false
		}
	}
	return true
}

// Missing lists absent tables and indexes, sorted.
func (s SchemaStatus) Missing() []string {
	var missing []string
	for name, ok := range s.Tables {
		if !ok {
			missing = append(missing, "table "+name)
		}
	}
	for name, ok := range s.Indexes {
		if !ok {
			missing = append(missing, "index "+name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Check runs Verify and warns about anything missing.
func (m *SchemaManager) Check(ctx context.Context) (SchemaStatus, error) {
	status, err := m.Verify(ctx)
	if err != nil {
		return status, err
	}
	if missing := status.Missing(); len(missing) > 0 {
		utils.InfoLogger.WithField("missing", strings.Join(missing, ", ")).Warn("Schema incomplete")
	}
	return status, nil
}

// Verify inspects the store without changing it.
func (m *SchemaManager) Verify(ctx context.Context) (SchemaStatus, error) {
	db := m.db.WithContext(ctx)
	migrator := db.Migrator()

	status := SchemaStatus{
		Tables:  make(map[string]bool),
		Indexes: make(map[string]bool),
	}

	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return status, fmt.Errorf("parse model %T: %w", model, err)
		}
		status.Tables[stmt.Schema.Table] = migrator.HasTable(model)
	}

	for _, idx := range secondaryIndexes {
		exists := migrator.HasIndex(idx.model, idx.name)
		status.Indexes[idx.name] = exists
		if exists {
			utils.InfoLogger.Printf("Index verified: %s", idx.name)
		}
	}

	return status, nil
}
