package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDDL = []string{
	`CREATE TABLE tires (
		id TEXT PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		size TEXT NOT NULL,
		sale_price NUMERIC NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE inventory_records (
		id TEXT PRIMARY KEY,
		tire_id TEXT NOT NULL UNIQUE REFERENCES tires(id) ON DELETE CASCADE,
		quantity_available INTEGER NOT NULL DEFAULT 0,
		minimum_threshold INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	for _, stmt := range testDDL {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
	return conn
}

func seedTire(t *testing.T, conn *gorm.DB, sku string, qty, threshold int) uuid.UUID {
	t.Helper()

	tireID := uuid.New()
	now := time.Now().UTC()
	if err := conn.Exec(`INSERT INTO tires (id, sku, brand, model, size, sale_price, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tireID, sku, "Michelin", "Primacy 4", "205/55R16",
		decimal.RequireFromString("480000.00"), true, now, now).Error; err != nil {
		t.Fatalf("seed tire: %v", err)
	}
	if err := conn.Exec(`INSERT INTO inventory_records (id, tire_id, quantity_available, minimum_threshold, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New(), tireID, qty, threshold, now).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return tireID
}
