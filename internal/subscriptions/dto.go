package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// PlanDTO is the transport shape for a membership plan.
type PlanDTO struct {
	ID              uuid.UUID          `json:"id"`
	BusinessID      uuid.UUID          `json:"business_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Price           decimal.Decimal    `json:"price"`
	BillingCycle    enums.BillingCycle `json:"billing_cycle"`
	Benefits        []string           `json:"benefits,omitempty"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	IsActive        bool               `json:"is_active"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CreatePlanRequest is the inbound payload for creating a membership plan.
type CreatePlanRequest struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description,omitempty"`
	Price           decimal.Decimal    `json:"price"`
	BillingCycle    enums.BillingCycle `json:"billing_cycle" validate:"required"`
	Benefits        []string           `json:"benefits,omitempty"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
}

// SubscriptionDTO is the transport shape for a customer subscription.
type SubscriptionDTO struct {
	ID            uuid.UUID                `json:"id"`
	BusinessID    uuid.UUID                `json:"business_id"`
	PlanID        uuid.UUID                `json:"plan_id"`
	ContactID     *uuid.UUID               `json:"contact_id,omitempty"`
	CustomerEmail string                   `json:"customer_email"`
	Status        enums.SubscriptionStatus `json:"status"`
	StartedAt     time.Time                `json:"started_at"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	ExpiresAt     *time.Time               `json:"expires_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// EnrollRequest signs a customer up for a plan.
type EnrollRequest struct {
	PlanID        uuid.UUID  `json:"plan_id" validate:"required"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func planFromModel(m *models.MembershipPlan) *PlanDTO {
	if m == nil {
		return nil
	}

	return &PlanDTO{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		BillingCycle:    m.BillingCycle,
		Benefits:        []string(m.Benefits),
		DiscountPercent: m.DiscountPercent,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func subscriptionFromModel(m *models.CustomerSubscription) *SubscriptionDTO {
	if m == nil {
		return nil
	}

	return &SubscriptionDTO{
		ID:            m.ID,
		BusinessID:    m.BusinessID,
		PlanID:        m.PlanID,
		ContactID:     m.ContactID,
		CustomerEmail: m.CustomerEmail,
		Status:        m.Status,
		StartedAt:     m.StartedAt,
		CancelledAt:   m.CancelledAt,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r CreatePlanRequest) toModel(businessID uuid.UUID) *models.MembershipPlan {
	return &models.MembershipPlan{
		BusinessID:      businessID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		BillingCycle:    r.BillingCycle,
		Benefits:        pq.StringArray(r.Benefits),
		DiscountPercent: r.DiscountPercent,
		IsActive:        true,
	}
}
