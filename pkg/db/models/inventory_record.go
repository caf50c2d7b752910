package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord is the one-to-one stock counter for a tire. Quantity never
// goes below zero; the threshold marks the low-stock boundary.
type InventoryRecord struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TireID            uuid.UUID `gorm:"column:tire_id;type:uuid;not null;uniqueIndex:idx_inventory_records_tire_id"`
	QuantityAvailable int       `gorm:"column:quantity_available;not null;default:0"`
	MinimumThreshold  int       `gorm:"column:minimum_threshold;not null;default:0"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
