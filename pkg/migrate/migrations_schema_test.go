package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory_records.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_records",
		"FOREIGN KEY (tire_id) REFERENCES tires(id) ON DELETE CASCADE",
		"CHECK (quantity_available >= 0)",
		"CHECK (minimum_threshold >= 0)",
		"idx_inventory_records_tire_id",
		"DROP TABLE IF EXISTS inventory_records",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSalesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_sales.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS sales",
		"CREATE TABLE IF NOT EXISTS sale_line_items",
		"FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS sale_line_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUniqueIndexesOnNaturalKeys(t *testing.T) {
	for pattern, index := range map[string]string{
		"*_create_tires.sql":              "idx_tires_sku",
		"*_create_customers_advisors.sql": "idx_customers_document_id",
	} {
		if content := readMigration(t, pattern); !strings.Contains(content, index) {
			t.Errorf("migration %s missing unique index %q", pattern, index)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
