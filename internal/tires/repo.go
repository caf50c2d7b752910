package tires

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tire repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tire *models.Tire) (*models.Tire, error) {
	if err := r.db.WithContext(ctx).Create(tire).Error; err != nil {
		return nil, err
	}
	return tire, nil
}

func (r *repository) CreateInventoryRecord(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tire, error) {
	var tire models.Tire
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("id = ?", id).
		First(&tire).Error
	if err != nil {
		return nil, err
	}
	return &tire, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.Tire, error) {
	var list []models.Tire
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
