package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDumpExtractsPGDetail(t *testing.T) {
	cause := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_tires_sku",
		TableName:      "tires",
		Detail:         "Key (sku)=(P215-60R16) already exists.",
	}
	err := Wrap(CodeDuplicateKey, fmt.Errorf("insert tire: %w", cause), "db: insert tire")

	d := Dump(err)
	if d.Code != CodeDuplicateKey {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "idx_tires_sku" {
		t.Fatalf("pg detail not extracted: %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected unwrapped chain, got %v", d.Chain)
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" {
		t.Fatalf("expected zero dump, got %+v", d)
	}
}
