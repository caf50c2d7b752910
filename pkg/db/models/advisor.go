package models

import (
	"time"

	"github.com/google/uuid"
)

// Advisor is the sales advisor attributed on each sale.
type Advisor struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	DocumentID string    `gorm:"column:document_id;not null;uniqueIndex:idx_advisors_document_id"`
	Email      *string   `gorm:"column:email"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
