package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for sales and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindTiresByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Tire, error)
	FindInventoryByTireIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.InventoryRecord, error)
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CreateLineItems(ctx context.Context, items []models.SaleLineItem) error
	// DecrementStock subtracts qty in a single guarded UPDATE and reports
	// false when the remaining quantity could not cover it.
	DecrementStock(ctx context.Context, tireID uuid.UUID, qty int) (bool, error)
	UpdateSaleTotal(ctx context.Context, saleID uuid.UUID, total decimal.Decimal) error
	FindSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, limit int) ([]SaleSummary, error)
	ListLineItems(ctx context.Context, saleID uuid.UUID) ([]LineItemDetail, error)
}

// CustomerDirectory resolves customers referenced by a sale.
type CustomerDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// AdvisorDirectory resolves advisors referenced by a sale.
type AdvisorDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Advisor, error)
}

// Service exposes sale recording and reporting.
type Service interface {
	Create(ctx context.Context, input CreateSaleInput) (*models.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, limit int) ([]SaleSummary, error)
	LineItems(ctx context.Context, saleID uuid.UUID) ([]LineItemDetail, error)
}
