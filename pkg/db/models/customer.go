package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an append-only reference entity keyed by document id.
type Customer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	DocumentID string    `gorm:"column:document_id;not null;uniqueIndex:idx_customers_document_id"`
	Phone      *string   `gorm:"column:phone"`
	Email      *string   `gorm:"column:email"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
