package tires

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The production schema lives in goose migrations; tests recreate the slice of
// it they need with sqlite-compatible DDL (the postgres uuid defaults do not
// translate, ids are assigned in the service layer anyway).
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

	dsn := "file:tires_" + uuid.NewString() + "?mode=memory&cache=shared"
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
