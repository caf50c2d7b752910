package tires

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterInput carries the fields required to add a tire to the catalog.
type RegisterInput struct {
	SKU       string
	Brand     string
	Model     string
	Size      string
	SalePrice decimal.Decimal
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a tire service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tires repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Register creates a tire and its zeroed inventory record in one transaction.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Tire, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.SalePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must not be negative")
	}

	tire := &models.Tire{
		ID:        uuid.New(),
		SKU:       sku,
		Brand:     strings.TrimSpace(input.Brand),
		Model:     strings.TrimSpace(input.Model),
		Size:      strings.TrimSpace(input.Size),
		SalePrice: input.SalePrice,
		IsActive:  true,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, tire); err != nil {
			if db.IsUniqueViolation(err, "idx_tires_sku") {
				return pkgerrors.New(pkgerrors.CodeDuplicateKey,
					fmt.Sprintf("a tire with sku %s already exists", sku))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tire")
		}
		record := &models.InventoryRecord{
			ID:     uuid.New(),
			TireID: tire.ID,
		}
		if err := repo.CreateInventoryRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory record")
		}
		tire.Inventory = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tire, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Tire, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tire id required")
	}
	tire, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tire not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tire")
	}
	return tire, nil
}

func (s *service) List(ctx context.Context) ([]models.Tire, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tires")
	}
	return list, nil
}
