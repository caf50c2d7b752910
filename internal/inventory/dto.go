package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status labels carried over from the original floor reports.
const (
	StatusLowStock = "LOW STOCK"
	StatusOK       = "OK"
)

// AdjustInput carries a relative stock movement for one tire.
type AdjustInput struct {
	TireID           uuid.UUID
	Delta            int
	MinimumThreshold int
}

// StockRow is one line of the inventory report, joined with tire metadata.
type StockRow struct {
	TireID            uuid.UUID       `json:"tire_id"`
	SKU               string          `json:"sku"`
	Brand             string          `json:"brand"`
	Model             string          `json:"model"`
	Size              string          `json:"size"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	QuantityAvailable int             `json:"quantity_available"`
	MinimumThreshold  int             `json:"minimum_threshold"`
	Status            string          `json:"status"`
}
