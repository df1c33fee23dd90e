package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Repository exposes membership plan and subscription persistence operations.
type Repository struct {
	client *pkgdb.Client
	db     *gorm.DB
}

// NewRepository binds the repo to the shared database client.
func NewRepository(client *pkgdb.Client) *Repository {
	return &Repository{client: client, db: client.DB()}
}

// InTenant runs fn against a repository bound to a transaction whose RLS
// tenant setting is pinned to the business. Writes go through here so the
// row policies see a tenant even when the connecting role does not bypass
// them.
func (r *Repository) InTenant(ctx context.Context, businessID uuid.UUID, fn func(subscriptionRepo) error) error {
	return r.client.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// CreatePlan inserts a membership plan.
func (r *Repository) CreatePlan(ctx context.Context, plan *models.MembershipPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// FindPlanByID loads a plan scoped to the business.
func (r *Repository) FindPlanByID(ctx context.Context, businessID, id uuid.UUID) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns the business's plans, active first, newest first within
// each group.
func (r *Repository) ListPlans(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]models.MembershipPlan, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if !includeInactive {
		q = q.Where("is_active = TRUE")
	}

	var rows []models.MembershipPlan
	err := q.Order("is_active DESC, created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RetirePlan deactivates a plan so no new customers can enroll. Existing
// subscriptions keep running.
func (r *Repository) RetirePlan(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.MembershipPlan{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Update("is_active", false).Error
}

// CreateSubscription inserts a subscription row. The partial unique index on
// active rows rejects a second active subscription for the same email.
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.CustomerSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// FindSubscriptionByID loads a subscription scoped to the business.
func (r *Repository) FindSubscriptionByID(ctx context.Context, businessID, id uuid.UUID) (*models.CustomerSubscription, error) {
	var sub models.CustomerSubscription
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubscriptions returns subscriptions for the business, optionally
// narrowed by status or customer email.
func (r *Repository) ListSubscriptions(ctx context.Context, businessID uuid.UUID, status *enums.SubscriptionStatus, email string) ([]models.CustomerSubscription, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if email != "" {
		q = q.Where("lower(customer_email) = lower(?)", email)
	}

	var rows []models.CustomerSubscription
	err := q.Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateSubscription applies the provided columns.
func (r *Repository) UpdateSubscription(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerSubscription{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}
