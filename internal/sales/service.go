package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo      Repository
	tx        txRunner
	customers CustomerDirectory
	advisors  AdvisorDirectory
	now       func() time.Time
}

// NewService builds a sales service with the required dependencies.
func NewService(repo Repository, tx txRunner, customers CustomerDirectory, advisors AdvisorDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer directory required")
	}
	if advisors == nil {
		return nil, fmt.Errorf("advisor directory required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		customers: customers,
		advisors:  advisors,
		now:       time.Now,
	}, nil
}

// Create records a sale and its stock movements as one transaction. Items are
// validated in input order against a running remaining-quantity count, so two
// items referencing the same tire cannot jointly exceed its stock. Unit prices
// are snapshotted from the catalog at sale time.
func (s *service) Create(ctx context.Context, input CreateSaleInput) (*models.Sale, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.AdvisorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "advisor id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a sale needs at least one item")
	}
	for _, item := range input.Items {
		if item.TireID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tire id required on every item")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
		}
	}

	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if _, err := s.advisors.FindByID(ctx, input.AdvisorID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "advisor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load advisor")
	}

	tireIDs := uniqueTireIDs(input.Items)

	sale := &models.Sale{
		ID:         uuid.New(),
		OccurredAt: s.now().UTC(),
		CustomerID: input.CustomerID,
		AdvisorID:  input.AdvisorID,
		Total:      decimal.Zero,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		tires, err := repo.FindTiresByIDs(ctx, tireIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tires")
		}
		records, err := repo.FindInventoryByTireIDs(ctx, tireIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
		}

		remaining := make(map[uuid.UUID]int, len(records))
		for _, item := range input.Items {
			tire, ok := tires[item.TireID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("tire %s not found", item.TireID))
			}
			record, ok := records[item.TireID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeMissingInventory,
					fmt.Sprintf("no inventory record for tire %s", item.TireID))
			}
			if _, seen := remaining[item.TireID]; !seen {
				remaining[item.TireID] = record.QuantityAvailable
			}
			if remaining[item.TireID] < item.Quantity {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("insufficient stock for sku %s: requested %d, available %d",
						tire.SKU, item.Quantity, remaining[item.TireID]))
			}
			remaining[item.TireID] -= item.Quantity
		}

		if _, err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}

		total := decimal.Zero
		items := make([]models.SaleLineItem, 0, len(input.Items))
		for _, item := range input.Items {
			tire := tires[item.TireID]
			subtotal := tire.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

			items = append(items, models.SaleLineItem{
				ID:        uuid.New(),
				SaleID:    sale.ID,
				TireID:    item.TireID,
				Quantity:  item.Quantity,
				UnitPrice: tire.SalePrice,
				Subtotal:  subtotal,
			})

			// guarded decrement backstops the validation above against
			// writers outside this transaction
			applied, err := repo.DecrementStock(ctx, item.TireID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("insufficient stock for sku %s", tire.SKU))
			}
			total = total.Add(subtotal)
		}

		if err := repo.CreateLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
		}
		if err := repo.UpdateSaleTotal(ctx, sale.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale total")
		}

		sale.Total = total
		sale.LineItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}
	sale, err := s.repo.FindSaleByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}

func (s *service) List(ctx context.Context, limit int) ([]SaleSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := s.repo.ListSales(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return rows, nil
}

func (s *service) LineItems(ctx context.Context, saleID uuid.UUID) ([]LineItemDetail, error) {
	if saleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}
	if _, err := s.repo.FindSaleByID(ctx, saleID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	rows, err := s.repo.ListLineItems(ctx, saleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list line items")
	}
	return rows, nil
}

func uniqueTireIDs(items []SaleItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.TireID]; ok {
			continue
		}
		seen[item.TireID] = struct{}{}
		ids = append(ids, item.TireID)
	}
	return ids
}
