package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable transaction record. Total always equals the sum of its
// line item subtotals.
type Sale struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OccurredAt time.Time       `gorm:"column:occurred_at;not null"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null"`
	AdvisorID  uuid.UUID       `gorm:"column:advisor_id;type:uuid;not null"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	LineItems  []SaleLineItem  `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
