package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for inventory records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByTireID(ctx context.Context, tireID uuid.UUID) (*models.InventoryRecord, error)
	// ApplyDelta adds delta to the stored quantity and sets the threshold in a
	// single guarded UPDATE. It reports false when the guard rejected the
	// change (row missing or the delta would push the quantity negative).
	ApplyDelta(ctx context.Context, tireID uuid.UUID, delta, threshold int) (bool, error)
	ListWithTires(ctx context.Context) ([]StockRow, error)
}

// Service exposes inventory adjustment and reporting.
type Service interface {
	Adjust(ctx context.Context, input AdjustInput) (*models.InventoryRecord, error)
	List(ctx context.Context) ([]StockRow, error)
}
