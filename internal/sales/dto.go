package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemInput is one requested tire-quantity pair. Repeated tire ids are
// kept as separate line items, never merged.
type SaleItemInput struct {
	TireID   uuid.UUID
	Quantity int
}

// CreateSaleInput carries everything needed to record a sale.
type CreateSaleInput struct {
	CustomerID uuid.UUID
	AdvisorID  uuid.UUID
	Items      []SaleItemInput
}

// SaleSummary is one row of the sales listing, joined with the customer and
// advisor names.
type SaleSummary struct {
	ID           uuid.UUID       `json:"id"`
	OccurredAt   time.Time       `json:"occurred_at"`
	CustomerName string          `json:"customer_name"`
	AdvisorName  string          `json:"advisor_name"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// LineItemDetail is one line of a sale drill-down, joined with tire metadata.
type LineItemDetail struct {
	ID        uuid.UUID       `json:"id"`
	TireID    uuid.UUID       `json:"tire_id"`
	SKU       string          `json:"sku"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
