package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Adjust applies a relative stock movement. The quantity guard and the write
// happen in one statement, so a rejected adjustment leaves the row untouched.
func (s *service) Adjust(ctx context.Context, input AdjustInput) (*models.InventoryRecord, error) {
	if input.TireID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tire id required")
	}
	if input.MinimumThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum threshold must not be negative")
	}

	var updated *models.InventoryRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		applied, err := repo.ApplyDelta(ctx, input.TireID, input.Delta, input.MinimumThreshold)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply stock delta")
		}
		if !applied {
			record, ferr := repo.FindByTireID(ctx, input.TireID)
			if ferr == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeMissingInventory,
					fmt.Sprintf("no inventory record for tire %s", input.TireID))
			}
			if ferr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, ferr, "load inventory record")
			}
			return pkgerrors.New(pkgerrors.CodeNegativeStock,
				fmt.Sprintf("adjustment of %d would leave %d units below zero",
					input.Delta, record.QuantityAvailable))
		}

		record, err := repo.FindByTireID(ctx, input.TireID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload inventory record")
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns the stock report with each row labelled LOW STOCK when the
// quantity has fallen to or below its threshold.
func (s *service) List(ctx context.Context) ([]StockRow, error) {
	rows, err := s.repo.ListWithTires(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	for i := range rows {
		if rows[i].QuantityAvailable <= rows[i].MinimumThreshold {
			rows[i].Status = StatusLowStock
		} else {
			rows[i].Status = StatusOK
		}
	}
	return rows, nil
}
