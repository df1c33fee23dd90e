package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// MembershipPlan is a recurring-revenue plan a business sells to customers.
// DiscountPercent applies to member pricing on jobs and invoices.
type MembershipPlan struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID          `gorm:"column:business_id;type:uuid;not null"`
	Name            string             `gorm:"column:name;not null"`
	Description     string             `gorm:"column:description;not null;default:''"`
	BillingCycle    enums.BillingCycle `gorm:"column:billing_cycle;not null;default:'monthly'"`
	Price           decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Benefits        pq.StringArray     `gorm:"column:benefits;type:text[]"`
	DiscountPercent decimal.Decimal    `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	IsActive        bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
