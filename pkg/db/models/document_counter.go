package models

import (
	"github.com/google/uuid"
)

// DocumentCounter hands out sequential document numbers per business.
// Estimates, invoices, and jobs each advance their own row.
type DocumentCounter struct {
	BusinessID   uuid.UUID `gorm:"column:business_id;type:uuid;primaryKey"`
	DocumentType string    `gorm:"column:document_type;primaryKey"`
	NextNumber   int64     `gorm:"column:next_number;not null;default:1"`
}
