package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByTireID(ctx context.Context, tireID uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("tire_id = ?", tireID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ApplyDelta(ctx context.Context, tireID uuid.UUID, delta, threshold int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_records
		SET quantity_available = quantity_available + ?,
			minimum_threshold = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE tire_id = ? AND quantity_available + ? >= 0
	`, delta, threshold, tireID, delta)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListWithTires(ctx context.Context) ([]StockRow, error) {
	var rows []StockRow
	err := r.db.WithContext(ctx).
		Table("inventory_records").
		Select(`tires.id AS tire_id, tires.sku, tires.brand, tires.model, tires.size,
			tires.sale_price, inventory_records.quantity_available,
			inventory_records.minimum_threshold`).
		Joins("JOIN tires ON tires.id = inventory_records.tire_id").
		Where("tires.is_active = ?", true).
		Order("tires.sku ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
