package sales

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
	`CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		document_id TEXT NOT NULL UNIQUE,
		phone TEXT,
		email TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE advisors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		document_id TEXT NOT NULL UNIQUE,
		email TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE sales (
		id TEXT PRIMARY KEY,
		occurred_at DATETIME NOT NULL,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		advisor_id TEXT NOT NULL REFERENCES advisors(id),
		total NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME
	)`,
	`CREATE TABLE sale_line_items (
		id TEXT PRIMARY KEY,
		sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		tire_id TEXT NOT NULL REFERENCES tires(id),
		quantity INTEGER NOT NULL,
		unit_price NUMERIC NOT NULL,
		subtotal NUMERIC NOT NULL,
		created_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:sales_" + uuid.NewString() + "?mode=memory&cache=shared"
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

func seedTire(t *testing.T, conn *gorm.DB, sku, price string, qty int) uuid.UUID {
	t.Helper()

	tireID := uuid.New()
	now := time.Now().UTC()
	if err := conn.Exec(`INSERT INTO tires (id, sku, brand, model, size, sale_price, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tireID, sku, "Michelin", "Primacy 4", "205/55R16",
		decimal.RequireFromString(price), true, now, now).Error; err != nil {
		t.Fatalf("seed tire: %v", err)
	}
	if err := conn.Exec(`INSERT INTO inventory_records (id, tire_id, quantity_available, minimum_threshold, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New(), tireID, qty, 0, now).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return tireID
}

func seedCustomer(t *testing.T, conn *gorm.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	if err := conn.Exec(`INSERT INTO customers (id, name, document_id, created_at)
		VALUES (?, ?, ?, ?)`,
		id, name, "CC-"+uuid.NewString(), time.Now().UTC()).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return id
}

func seedAdvisor(t *testing.T, conn *gorm.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	if err := conn.Exec(`INSERT INTO advisors (id, name, document_id, created_at)
		VALUES (?, ?, ?, ?)`,
		id, name, "CC-"+uuid.NewString(), time.Now().UTC()).Error; err != nil {
		t.Fatalf("seed advisor: %v", err)
	}
	return id
}

func stockOf(t *testing.T, conn *gorm.DB, tireID uuid.UUID) int {
	t.Helper()

	var qty int
	if err := conn.Table("inventory_records").
		Where("tire_id = ?", tireID).
		Select("quantity_available").Scan(&qty).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return qty
}
