package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceArea declares coverage for one postal code. A business serves a
// location when an active row matches its postal code.
type ServiceArea struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	PostalCode string           `gorm:"column:postal_code;not null"`
	City       string           `gorm:"column:city;not null;default:''"`
	Region     string           `gorm:"column:region;not null;default:''"`
	Country    string           `gorm:"column:country;not null;default:'US'"`
	TravelFee  *decimal.Decimal `gorm:"column:travel_fee;type:numeric(12,2)"`
	IsActive   bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
