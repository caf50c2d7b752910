package tires

import (
	"context"
	"testing"

	"github.com/google/uuid"
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
	svc, err := NewService(NewRepository(conn), gormTxRunner{db: conn})
	require.NoError(t, err)
	return svc, conn
}

func TestRegister_CreatesTireWithZeroInventory(t *testing.T) {
	svc, conn := newTestService(t)

	tire, err := svc.Register(context.Background(), RegisterInput{
		SKU:       "MIC-PRIM4-205-55R16",
		Brand:     "Michelin",
		Model:     "Primacy 4",
		Size:      "205/55R16",
		SalePrice: decimal.RequireFromString("480000.00"),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, tire.ID)
	require.True(t, tire.IsActive)
	require.NotNil(t, tire.Inventory)
	require.Equal(t, 0, tire.Inventory.QuantityAvailable)
	require.Equal(t, 0, tire.Inventory.MinimumThreshold)

	var count int64
	require.NoError(t, conn.Table("inventory_records").
		Where("tire_id = ?", tire.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRegister_DuplicateSKU(t *testing.T) {
	svc, conn := newTestService(t)

	input := RegisterInput{
		SKU:       "BST-TUR-185-65R15",
		Brand:     "Bridgestone",
		Model:     "Turanza",
		Size:      "185/65R15",
		SalePrice: decimal.RequireFromString("350000.00"),
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeDuplicateKey, appErr.Code())

	// the failed attempt must not leave a second inventory row behind
	var count int64
	require.NoError(t, conn.Table("inventory_records").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRegister_RejectsNegativePrice(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		SKU:       "NEG-PRICE",
		Brand:     "X",
		Model:     "Y",
		Size:      "Z",
		SalePrice: decimal.RequireFromString("-1.00"),
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestList_ReturnsOnlyActive(t *testing.T) {
	svc, conn := newTestService(t)

	tire, err := svc.Register(context.Background(), RegisterInput{
		SKU:       "ACT-1",
		Brand:     "Goodyear",
		Model:     "EfficientGrip",
		Size:      "195/65R15",
		SalePrice: decimal.RequireFromString("420000.00"),
	})
	require.NoError(t, err)

	retired, err := svc.Register(context.Background(), RegisterInput{
		SKU:       "RET-1",
		Brand:     "Goodyear",
		Model:     "Eagle",
		Size:      "225/45R17",
		SalePrice: decimal.RequireFromString("610000.00"),
	})
	require.NoError(t, err)
	require.NoError(t, conn.Table("tires").
		Where("id = ?", retired.ID).
		Update("is_active", false).Error)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, tire.ID, list[0].ID)
}
