package tires

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the tire catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tire *models.Tire) (*models.Tire, error)
	CreateInventoryRecord(ctx context.Context, record *models.InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tire, error)
	ListActive(ctx context.Context) ([]models.Tire, error)
}

// Service exposes the tire catalog operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Tire, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tire, error)
	List(ctx context.Context) ([]models.Tire, error)
}
