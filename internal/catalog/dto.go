package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
)

// CategoryDTO is a trade category with its activities.
type CategoryDTO struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	SortOrder   int           `json:"sort_order"`
	Activities  []ActivityDTO `json:"activities,omitempty"`
}

// ActivityDTO is a trade activity within a category.
type ActivityDTO struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ServiceTemplateDTO is a system template a business can adopt.
type ServiceTemplateDTO struct {
	ID                       uuid.UUID        `json:"id"`
	ActivityID               uuid.UUID        `json:"activity_id"`
	Name                     string           `json:"name"`
	Description              string           `json:"description,omitempty"`
	PricingModel             string           `json:"pricing_model"`
	SuggestedPrice           *decimal.Decimal `json:"suggested_price,omitempty"`
	EstimatedDurationMinutes *int             `json:"estimated_duration_minutes,omitempty"`
}

// BusinessServiceDTO is a business's priced service offering.
type BusinessServiceDTO struct {
	ID           uuid.UUID        `json:"id"`
	BusinessID   uuid.UUID        `json:"business_id"`
	TemplateID   *uuid.UUID       `json:"template_id,omitempty"`
	Slug         string           `json:"slug"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	PricingModel string           `json:"pricing_model"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateServiceRequest is the inbound payload for offering a service.
type CreateServiceRequest struct {
	TemplateID   *uuid.UUID       `json:"template_id,omitempty"`
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description,omitempty"`
	PricingModel string           `json:"pricing_model,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

// ServiceAreaDTO is one postal code a business covers.
type ServiceAreaDTO struct {
	ID         uuid.UUID        `json:"id"`
	BusinessID uuid.UUID        `json:"business_id"`
	PostalCode string           `json:"postal_code"`
	City       string           `json:"city,omitempty"`
	Region     string           `json:"region,omitempty"`
	Country    string           `json:"country"`
	TravelFee  *decimal.Decimal `json:"travel_fee,omitempty"`
	IsActive   bool             `json:"is_active"`
}

// AddServiceAreaRequest is the inbound payload for declaring coverage.
type AddServiceAreaRequest struct {
	PostalCode string           `json:"postal_code" validate:"required"`
	City       string           `json:"city,omitempty"`
	Region     string           `json:"region,omitempty"`
	Country    string           `json:"country,omitempty"`
	TravelFee  *decimal.Decimal `json:"travel_fee,omitempty"`
}

func categoryFromModel(m *models.TradeCategory) CategoryDTO {
	return CategoryDTO{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
}

func activityFromModel(m *models.TradeActivity) ActivityDTO {
	return ActivityDTO{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Slug:        m.Slug,
		Name:        m.Name,
		Description: m.Description,
	}
}

func templateFromModel(m *models.ServiceTemplate) ServiceTemplateDTO {
	return ServiceTemplateDTO{
		ID:                       m.ID,
		ActivityID:               m.ActivityID,
		Name:                     m.Name,
		Description:              m.Description,
		PricingModel:             m.PricingModel,
		SuggestedPrice:           m.SuggestedPrice,
		EstimatedDurationMinutes: m.EstimatedDurationMinutes,
	}
}

func serviceFromModel(m *models.BusinessService) *BusinessServiceDTO {
	if m == nil {
		return nil
	}

	return &BusinessServiceDTO{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		TemplateID:   m.TemplateID,
		Slug:         m.Slug,
		Name:         m.Name,
		Description:  m.Description,
		PricingModel: m.PricingModel,
		Price:        m.Price,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func areaFromModel(m *models.ServiceArea) *ServiceAreaDTO {
	if m == nil {
		return nil
	}

	return &ServiceAreaDTO{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		PostalCode: m.PostalCode,
		City:       m.City,
		Region:     m.Region,
		Country:    m.Country,
		TravelFee:  m.TravelFee,
		IsActive:   m.IsActive,
	}
}
