package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

const uniqueActiveConstraint = "uq_customer_subscriptions_active"

// Service manages membership plans and customer enrollment.
type Service interface {
	CreatePlan(ctx context.Context, businessID uuid.UUID, req CreatePlanRequest) (*PlanDTO, error)
	ListPlans(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]PlanDTO, error)
	RetirePlan(ctx context.Context, businessID, planID uuid.UUID) error
	Enroll(ctx context.Context, businessID uuid.UUID, req EnrollRequest) (*SubscriptionDTO, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error)
	List(ctx context.Context, businessID uuid.UUID, status *enums.SubscriptionStatus, email string) ([]SubscriptionDTO, error)
	Pause(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error)
	Resume(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error)
	Cancel(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error)
}

type subscriptionRepo interface {
	CreatePlan(ctx context.Context, plan *models.MembershipPlan) error
	FindPlanByID(ctx context.Context, businessID, id uuid.UUID) (*models.MembershipPlan, error)
	ListPlans(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]models.MembershipPlan, error)
	RetirePlan(ctx context.Context, businessID, id uuid.UUID) error
	CreateSubscription(ctx context.Context, sub *models.CustomerSubscription) error
	FindSubscriptionByID(ctx context.Context, businessID, id uuid.UUID) (*models.CustomerSubscription, error)
	ListSubscriptions(ctx context.Context, businessID uuid.UUID, status *enums.SubscriptionStatus, email string) ([]models.CustomerSubscription, error)
	UpdateSubscription(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error
	InTenant(ctx context.Context, businessID uuid.UUID, fn func(subscriptionRepo) error) error
}

// ServiceParams bundles the dependencies for the subscriptions service.
type ServiceParams struct {
	Repo subscriptionRepo
}

type service struct {
	repo subscriptionRepo
}

// NewService constructs the subscriptions service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscription repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) CreatePlan(ctx context.Context, businessID uuid.UUID, req CreatePlanRequest) (*PlanDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan name is required")
	}
	if !req.BillingCycle.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing cycle")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan price cannot be negative")
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}

	plan := req.toModel(businessID)
	err := s.repo.InTenant(ctx, businessID, func(repo subscriptionRepo) error {
		return repo.CreatePlan(ctx, plan)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "uq_membership_plans_business_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a plan with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership plan")
	}
	return planFromModel(plan), nil
}

func (s *service) ListPlans(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]PlanDTO, error) {
	rows, err := s.repo.ListPlans(ctx, businessID, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list membership plans")
	}
	out := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *planFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) RetirePlan(ctx context.Context, businessID, planID uuid.UUID) error {
	return s.repo.InTenant(ctx, businessID, func(repo subscriptionRepo) error {
		_, err := repo.FindPlanByID(ctx, businessID, planID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership plan not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load membership plan")
		}
		if err := repo.RetirePlan(ctx, businessID, planID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retire membership plan")
		}
		return nil
	})
}

// Enroll signs a customer up for a plan. The database enforces at most one
// active subscription per customer email within a business; a violation maps
// to a conflict so a double enrollment never succeeds silently.
func (s *service) Enroll(ctx context.Context, businessID uuid.UUID, req EnrollRequest) (*SubscriptionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_email is required")
	}

	var sub *models.CustomerSubscription
	err := s.repo.InTenant(ctx, businessID, func(repo subscriptionRepo) error {
		plan, err := repo.FindPlanByID(ctx, businessID, req.PlanID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership plan not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load membership plan")
		}
		if !plan.IsActive {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot enroll in a retired plan")
		}

		sub = &models.CustomerSubscription{
			BusinessID:    businessID,
			PlanID:        plan.ID,
			ContactID:     req.ContactID,
			CustomerEmail: email,
			Status:        enums.SubscriptionStatusActive,
			StartedAt:     time.Now().UTC(),
			ExpiresAt:     req.ExpiresAt,
		}
		if err := repo.CreateSubscription(ctx, sub); err != nil {
			if db.IsUniqueViolation(err, uniqueActiveConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "customer already has an active subscription")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create subscription")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subscriptionFromModel(sub), nil
}

func (s *service) Get(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, businessID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load subscription")
	}
	return subscriptionFromModel(sub), nil
}

func (s *service) List(ctx context.Context, businessID uuid.UUID, status *enums.SubscriptionStatus, email string) ([]SubscriptionDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid subscription status")
	}
	rows, err := s.repo.ListSubscriptions(ctx, businessID, status, strings.TrimSpace(email))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subscriptions")
	}
	out := make([]SubscriptionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *subscriptionFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Pause(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error) {
	return s.transition(ctx, businessID, id, enums.SubscriptionStatusPaused,
		[]enums.SubscriptionStatus{enums.SubscriptionStatusActive}, nil)
}

// Resume reactivates a paused subscription. The partial unique index only
// covers active rows, so reactivation can still collide with a newer active
// subscription created while this one was paused.
func (s *service) Resume(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error) {
	return s.transition(ctx, businessID, id, enums.SubscriptionStatusActive,
		[]enums.SubscriptionStatus{enums.SubscriptionStatusPaused}, nil)
}

func (s *service) Cancel(ctx context.Context, businessID, id uuid.UUID) (*SubscriptionDTO, error) {
	now := time.Now().UTC()
	return s.transition(ctx, businessID, id, enums.SubscriptionStatusCancelled,
		[]enums.SubscriptionStatus{enums.SubscriptionStatusActive, enums.SubscriptionStatusPaused},
		map[string]any{"cancelled_at": now})
}

func (s *service) transition(ctx context.Context, businessID, id uuid.UUID, to enums.SubscriptionStatus, from []enums.SubscriptionStatus, extra map[string]any) (*SubscriptionDTO, error) {
	var sub *models.CustomerSubscription
	err := s.repo.InTenant(ctx, businessID, func(repo subscriptionRepo) error {
		loaded, err := repo.FindSubscriptionByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load subscription")
		}

		allowed := false
		for _, status := range from {
			if loaded.Status == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot move subscription from %s to %s", loaded.Status, to))
		}

		updates := map[string]any{"status": to}
		for k, v := range extra {
			updates[k] = v
		}
		if err := repo.UpdateSubscription(ctx, businessID, id, updates); err != nil {
			if db.IsUniqueViolation(err, uniqueActiveConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "customer already has an active subscription")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update subscription status")
		}

		sub = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	sub.Status = to
	if cancelledAt, ok := extra["cancelled_at"].(time.Time); ok {
		sub.CancelledAt = &cancelledAt
	}
	return subscriptionFromModel(sub), nil
}
