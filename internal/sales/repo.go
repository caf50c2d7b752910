package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTiresByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Tire, error) {
	var tires []models.Tire
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tires).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Tire, len(tires))
	for _, tire := range tires {
		byID[tire.ID] = tire
	}
	return byID, nil
}

func (r *repository) FindInventoryByTireIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := r.db.WithContext(ctx).Where("tire_id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byTire := make(map[uuid.UUID]models.InventoryRecord, len(records))
	for _, record := range records {
		byTire[record.TireID] = record
	}
	return byTire, nil
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Omit("LineItems").Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.SaleLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) DecrementStock(ctx context.Context, tireID uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_records
		SET quantity_available = quantity_available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE tire_id = ? AND quantity_available >= ?
	`, qty, tireID, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdateSaleTotal(ctx context.Context, saleID uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", saleID).
		UpdateColumn("total", total).Error
}

func (r *repository) FindSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) ListSales(ctx context.Context, limit int) ([]SaleSummary, error) {
	var rows []SaleSummary
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(`sales.id, sales.occurred_at, customers.name AS customer_name,
			advisors.name AS advisor_name, sales.total,
			(SELECT COUNT(*) FROM sale_line_items WHERE sale_line_items.sale_id = sales.id) AS item_count`).
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Joins("JOIN advisors ON advisors.id = sales.advisor_id").
		Order("sales.occurred_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListLineItems(ctx context.Context, saleID uuid.UUID) ([]LineItemDetail, error) {
	var rows []LineItemDetail
	err := r.db.WithContext(ctx).
		Table("sale_line_items").
		Select(`sale_line_items.id, sale_line_items.tire_id, tires.sku, tires.brand,
			tires.model, tires.size, sale_line_items.quantity,
			sale_line_items.unit_price, sale_line_items.subtotal`).
		Joins("JOIN tires ON tires.id = sale_line_items.tire_id").
		Where("sale_line_items.sale_id = ?", saleID).
		Order("sale_line_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
