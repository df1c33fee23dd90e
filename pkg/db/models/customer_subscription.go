package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// CustomerSubscription enrolls a customer in a membership plan. A partial
// unique index allows at most one active row per (business_id,
// customer_email).
type CustomerSubscription struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID    uuid.UUID                `gorm:"column:business_id;type:uuid;not null"`
	PlanID        uuid.UUID                `gorm:"column:plan_id;type:uuid;not null"`
	ContactID     *uuid.UUID               `gorm:"column:contact_id;type:uuid"`
	CustomerEmail string                   `gorm:"column:customer_email;not null"`
	Status        enums.SubscriptionStatus `gorm:"column:status;not null;default:'active'"`
	StartedAt     time.Time                `gorm:"column:started_at;not null"`
	CancelledAt   *time.Time               `gorm:"column:cancelled_at"`
	ExpiresAt     *time.Time               `gorm:"column:expires_at"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
