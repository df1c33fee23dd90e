package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Estimate is a priced proposal sent to a contact. RecipientData snapshots
// the contact at send time (name, email, phone, address keys).
type Estimate struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID     uuid.UUID            `gorm:"column:business_id;type:uuid;not null"`
	ContactID      *uuid.UUID           `gorm:"column:contact_id;type:uuid"`
	JobID          *uuid.UUID           `gorm:"column:job_id;type:uuid"`
	TemplateID     *uuid.UUID           `gorm:"column:template_id;type:uuid"`
	EstimateNumber string               `gorm:"column:estimate_number;not null"`
	Status         enums.EstimateStatus `gorm:"column:status;not null;default:'draft'"`
	RecipientData  types.JSONMap        `gorm:"column:recipient_data;type:jsonb"`
	Subtotal       decimal.Decimal      `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal      `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	Total          decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	ValidUntil     *time.Time           `gorm:"column:valid_until"`
	SentAt         *time.Time           `gorm:"column:sent_at"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// EstimateLineItem is one priced row on an estimate.
type EstimateLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EstimateID  uuid.UUID       `gorm:"column:estimate_id;type:uuid;not null"`
	Position    int             `gorm:"column:position;not null;default:0"`
	Description string          `gorm:"column:description;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
