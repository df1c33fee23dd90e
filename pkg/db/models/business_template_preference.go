package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// BusinessTemplatePreference is the explicit per-business template choice,
// the first tier of the default-resolution chain.
type BusinessTemplatePreference struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID   uuid.UUID          `gorm:"column:business_id;type:uuid;not null"`
	TemplateType enums.TemplateType `gorm:"column:template_type;not null"`
	TemplateID   uuid.UUID          `gorm:"column:template_id;type:uuid;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
