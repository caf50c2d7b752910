package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tire is a sellable stock-keeping unit.
type Tire struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU       string           `gorm:"column:sku;not null;uniqueIndex:idx_tires_sku"`
	Brand     string           `gorm:"column:brand;not null"`
	Model     string           `gorm:"column:model;not null"`
	Size      string           `gorm:"column:size;not null"`
	SalePrice decimal.Decimal  `gorm:"column:sale_price;type:numeric(12,2);not null"`
	IsActive  bool             `gorm:"column:is_active;not null;default:true"`
	Inventory *InventoryRecord `gorm:"foreignKey:TireID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
