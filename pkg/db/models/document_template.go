package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// DocumentTemplate renders an estimate or invoice. System templates have a
// nil BusinessID and seed the fallback chain's last tier.
type DocumentTemplate struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID   *uuid.UUID         `gorm:"column:business_id;type:uuid"`
	TemplateType enums.TemplateType `gorm:"column:template_type;not null"`
	Name         string             `gorm:"column:name;not null"`
	Description  *string            `gorm:"column:description"`
	IsSystem     bool               `gorm:"column:is_system;not null;default:false"`
	IsDefault    bool               `gorm:"column:is_default;not null;default:false"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true"`
	Branding     types.JSONMap      `gorm:"column:branding;type:jsonb"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
