package templates

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// TemplateDTO is the transport shape for a document template.
type TemplateDTO struct {
	ID           uuid.UUID          `json:"id"`
	BusinessID   *uuid.UUID         `json:"business_id,omitempty"`
	TemplateType enums.TemplateType `json:"template_type"`
	Name         string             `json:"name"`
	Description  *string            `json:"description,omitempty"`
	IsSystem     bool               `json:"is_system"`
	IsDefault    bool               `json:"is_default"`
	IsActive     bool               `json:"is_active"`
	Branding     types.JSONMap      `json:"branding,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CreateTemplateDTO holds the data needed to persist a business template.
type CreateTemplateDTO struct {
	BusinessID   uuid.UUID
	TemplateType enums.TemplateType
	Name         string
	Description  *string
	Branding     types.JSONMap
}

func FromModel(m *models.DocumentTemplate) *TemplateDTO {
	if m == nil {
		return nil
	}

	return &TemplateDTO{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		TemplateType: m.TemplateType,
		Name:         m.Name,
		Description:  m.Description,
		IsSystem:     m.IsSystem,
		IsDefault:    m.IsDefault,
		IsActive:     m.IsActive,
		Branding:     m.Branding,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (c CreateTemplateDTO) ToModel() *models.DocumentTemplate {
	businessID := c.BusinessID
	return &models.DocumentTemplate{
		BusinessID:   &businessID,
		TemplateType: c.TemplateType,
		Name:         c.Name,
		Description:  c.Description,
		Branding:     c.Branding,
		IsActive:     true,
	}
}
