package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing models accepted by the catalog tables.
const (
	PricingModelFixed         = "fixed"
	PricingModelHourly        = "hourly"
	PricingModelPerUnit       = "per_unit"
	PricingModelQuoteRequired = "quote_required"
)

// TradeCategory is the top of the service taxonomy (plumbing, HVAC, ...).
type TradeCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string    `gorm:"column:slug;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TradeActivity is a concrete activity within a trade (drain cleaning, ...).
type TradeActivity struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;not null"`
	Slug        string    `gorm:"column:slug;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ServiceTemplate is a system-level service definition businesses can adopt.
type ServiceTemplate struct {
	ID                       uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ActivityID               uuid.UUID        `gorm:"column:activity_id;type:uuid;not null"`
	Name                     string           `gorm:"column:name;not null"`
	Description              string           `gorm:"column:description;not null;default:''"`
	PricingModel             string           `gorm:"column:pricing_model;not null;default:'fixed'"`
	SuggestedPrice           *decimal.Decimal `gorm:"column:suggested_price;type:numeric(12,2)"`
	EstimatedDurationMinutes *int             `gorm:"column:estimated_duration_minutes"`
	CreatedAt                time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// BusinessService is a business's adopted, priced version of a template.
type BusinessService struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID   uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	TemplateID   *uuid.UUID       `gorm:"column:template_id;type:uuid"`
	Slug         string           `gorm:"column:slug;not null"`
	Name         string           `gorm:"column:name;not null"`
	Description  string           `gorm:"column:description;not null;default:''"`
	PricingModel string           `gorm:"column:pricing_model;not null;default:'fixed'"`
	Price        *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
