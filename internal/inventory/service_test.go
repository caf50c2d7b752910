package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
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

func TestAdjust_AppliesDeltaAndThreshold(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "ADJ-1", 10, 2)

	record, err := svc.Adjust(context.Background(), AdjustInput{
		TireID:           tireID,
		Delta:            -4,
		MinimumThreshold: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 6, record.QuantityAvailable)
	require.Equal(t, 3, record.MinimumThreshold)
}

func TestAdjust_RejectsNegativeResult(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "ADJ-2", 3, 0)

	_, err := svc.Adjust(context.Background(), AdjustInput{
		TireID: tireID,
		Delta:  -5,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNegativeStock, appErr.Code())

	// rejected movement must not touch the row
	var qty int
	require.NoError(t, conn.Table("inventory_records").
		Where("tire_id = ?", tireID).
		Select("quantity_available").Scan(&qty).Error)
	require.Equal(t, 3, qty)
}

func TestAdjust_MissingRecord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Adjust(context.Background(), AdjustInput{
		TireID: uuid.New(),
		Delta:  1,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeMissingInventory, appErr.Code())
}

func TestAdjust_RejectsNegativeThreshold(t *testing.T) {
	svc, conn := newTestService(t)
	tireID := seedTire(t, conn, "ADJ-3", 5, 1)

	_, err := svc.Adjust(context.Background(), AdjustInput{
		TireID:           tireID,
		Delta:            1,
		MinimumThreshold: -1,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestList_LabelsLowStock(t *testing.T) {
	svc, conn := newTestService(t)
	lowID := seedTire(t, conn, "LOW-1", 2, 2)
	okID := seedTire(t, conn, "OK-1", 9, 2)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byTire := make(map[uuid.UUID]StockRow, len(rows))
	for _, row := range rows {
		byTire[row.TireID] = row
	}
	require.Equal(t, StatusLowStock, byTire[lowID].Status)
	require.Equal(t, StatusOK, byTire[okID].Status)
	require.Equal(t, "LOW-1", byTire[lowID].SKU)
}
