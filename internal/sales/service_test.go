package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/internal/advisors"
	"github.com/serviteca/serviteca-backend/internal/customers"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(
		NewRepository(conn),
		gormTxRunner{db: conn},
		customers.NewRepository(conn),
		advisors.NewRepository(conn),
	)
	require.NoError(t, err)
	return svc, conn
}

func TestCreate_ComputesTotalAndDecrementsStock(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-1", "120.00", 10)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	sale, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.True(t, sale.Total.Equal(decimal.RequireFromString("360.00")),
		"total %s", sale.Total)
	require.Len(t, sale.LineItems, 1)
	require.True(t, sale.LineItems[0].UnitPrice.Equal(decimal.RequireFromString("120.00")))
	require.Equal(t, 7, stockOf(t, conn, tireID))
}

func TestCreate_InsufficientStockRollsBackEverything(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-2", "120.00", 7)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	_, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 20}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())
	require.Contains(t, appErr.Message(), "SELL-2")

	require.Equal(t, 7, stockOf(t, conn, tireID))
	var saleCount, itemCount int64
	require.NoError(t, conn.Table("sales").Count(&saleCount).Error)
	require.NoError(t, conn.Table("sale_line_items").Count(&itemCount).Error)
	require.Zero(t, saleCount)
	require.Zero(t, itemCount)
}

func TestCreate_SameTireItemsValidatedCumulatively(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-3", "100.00", 5)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	// 3 and 3 pass individually but jointly exceed the 5 in stock
	_, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items: []SaleItemInput{
			{TireID: tireID, Quantity: 3},
			{TireID: tireID, Quantity: 3},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())
	require.Equal(t, 5, stockOf(t, conn, tireID))
}

func TestCreate_DuplicateTireItemsKeptAsSeparateRows(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-4", "50.00", 10)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	sale, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items: []SaleItemInput{
			{TireID: tireID, Quantity: 2},
			{TireID: tireID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, sale.LineItems, 2)
	require.True(t, sale.Total.Equal(decimal.RequireFromString("300.00")))
	require.Equal(t, 4, stockOf(t, conn, tireID))
}

func TestCreate_SnapshotsUnitPrice(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-5", "120.00", 10)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	sale, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 1}},
	})
	require.NoError(t, err)

	// catalog price changes must not rewrite history
	require.NoError(t, conn.Table("tires").
		Where("id = ?", tireID).
		Update("sale_price", decimal.RequireFromString("999.00")).Error)

	reloaded, err := svc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.LineItems, 1)
	require.True(t, reloaded.LineItems[0].UnitPrice.Equal(decimal.RequireFromString("120.00")))
}

func TestCreate_UnknownCustomerAndAdvisor(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-6", "80.00", 4)
	customerID := seedCustomer(t, conn, "Laura Gomez")

	_, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: uuid.New(),
		AdvisorID:  uuid.New(),
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  uuid.New(),
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 1}},
	})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreate_MissingInventoryRecord(t *testing.T) {
	svc, conn := newTestService(t)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	// tire without an inventory row
	tireID := uuid.New()
	require.NoError(t, conn.Exec(`INSERT INTO tires (id, sku, brand, model, size, sale_price, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tireID, "NO-INV", "Pirelli", "P7", "225/45R17",
		decimal.RequireFromString("90.00"), true).Error)

	_, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeMissingInventory, appErr.Code())
}

func TestCreate_RejectsNonPositiveQuantity(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-7", "80.00", 4)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	_, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 0}},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestList_JoinsNamesNewestFirst(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-8", "60.00", 20)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	first, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 2}},
	})
	require.NoError(t, err)

	// force a deterministic ordering
	require.NoError(t, conn.Table("sales").Where("id = ?", first.ID).
		Update("occurred_at", first.OccurredAt.Add(-time.Minute)).Error)

	rows, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, second.ID, rows[0].ID)
	require.Equal(t, "Laura Gomez", rows[0].CustomerName)
	require.Equal(t, "Carlos Ruiz", rows[0].AdvisorName)
	require.Equal(t, 1, rows[1].ItemCount)
}

func TestLineItems_JoinsTireMetadata(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "SELL-9", "75.50", 8)
	customerID := seedCustomer(t, conn, "Laura Gomez")
	advisorID := seedAdvisor(t, conn, "Carlos Ruiz")

	sale, err := svc.Create(context.Background(), CreateSaleInput{
		CustomerID: customerID,
		AdvisorID:  advisorID,
		Items:      []SaleItemInput{{TireID: tireID, Quantity: 2}},
	})
	require.NoError(t, err)

	rows, err := svc.LineItems(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "SELL-9", rows[0].SKU)
	require.Equal(t, "Michelin", rows[0].Brand)
	require.True(t, rows[0].Subtotal.Equal(decimal.RequireFromString("151.00")))
}

func TestLineItems_UnknownSale(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LineItems(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
