package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

type stubSubscriptionRepo struct {
	plans         map[uuid.UUID]*models.MembershipPlan
	subscriptions map[uuid.UUID]*models.CustomerSubscription
	createErr     error
	updateErr     error
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{
		plans:         map[uuid.UUID]*models.MembershipPlan{},
		subscriptions: map[uuid.UUID]*models.CustomerSubscription{},
	}
}

func (s *stubSubscriptionRepo) CreatePlan(_ context.Context, plan *models.MembershipPlan) error {
	plan.ID = uuid.New()
	s.plans[plan.ID] = plan
	return nil
}

func (s *stubSubscriptionRepo) FindPlanByID(_ context.Context, businessID, id uuid.UUID) (*models.MembershipPlan, error) {
	plan, ok := s.plans[id]
	if !ok || plan.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (s *stubSubscriptionRepo) ListPlans(_ context.Context, businessID uuid.UUID, includeInactive bool) ([]models.MembershipPlan, error) {
	var out []models.MembershipPlan
	for _, plan := range s.plans {
		if plan.BusinessID != businessID {
			continue
		}
		if !includeInactive && !plan.IsActive {
			continue
		}
		out = append(out, *plan)
	}
	return out, nil
}

func (s *stubSubscriptionRepo) RetirePlan(_ context.Context, businessID, id uuid.UUID) error {
	if plan, ok := s.plans[id]; ok && plan.BusinessID == businessID {
		plan.IsActive = false
	}
	return nil
}

func (s *stubSubscriptionRepo) CreateSubscription(_ context.Context, sub *models.CustomerSubscription) error {
	if s.createErr != nil {
		return s.createErr
	}
	sub.ID = uuid.New()
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *stubSubscriptionRepo) FindSubscriptionByID(_ context.Context, businessID, id uuid.UUID) (*models.CustomerSubscription, error) {
	sub, ok := s.subscriptions[id]
	if !ok || sub.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (s *stubSubscriptionRepo) ListSubscriptions(_ context.Context, businessID uuid.UUID, status *enums.SubscriptionStatus, email string) ([]models.CustomerSubscription, error) {
	var out []models.CustomerSubscription
	for _, sub := range s.subscriptions {
		if sub.BusinessID != businessID {
			continue
		}
		if status != nil && sub.Status != *status {
			continue
		}
		out = append(out, *sub)
	}
	return out, nil
}

func (s *stubSubscriptionRepo) InTenant(ctx context.Context, _ uuid.UUID, fn func(subscriptionRepo) error) error {
	return fn(s)
}

func (s *stubSubscriptionRepo) UpdateSubscription(_ context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	sub, ok := s.subscriptions[id]
	if !ok || sub.BusinessID != businessID {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(enums.SubscriptionStatus); ok {
		sub.Status = status
	}
	return nil
}

func mustSubscriptionService(t *testing.T, repo subscriptionRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	require.NoError(t, err)
	return svc
}

func seedPlan(repo *stubSubscriptionRepo, businessID uuid.UUID, active bool) *models.MembershipPlan {
	plan := &models.MembershipPlan{
		ID:           uuid.New(),
		BusinessID:   businessID,
		Name:         "Comfort Club",
		BillingCycle: enums.BillingCycleMonthly,
		IsActive:     active,
	}
	repo.plans[plan.ID] = plan
	return plan
}

func TestEnrollLowercasesEmailAndActivates(t *testing.T) {
	repo := newStubSubscriptionRepo()
	svc := mustSubscriptionService(t, repo)
	businessID := uuid.New()
	plan := seedPlan(repo, businessID, true)

	dto, err := svc.Enroll(context.Background(), businessID, EnrollRequest{
		PlanID:        plan.ID,
		CustomerEmail: "  Jordan@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", dto.CustomerEmail)
	assert.Equal(t, enums.SubscriptionStatusActive, dto.Status)
	assert.False(t, dto.StartedAt.IsZero(), "started_at should be set")
}

func TestEnrollRejectsRetiredPlan(t *testing.T) {
	repo := newStubSubscriptionRepo()
	svc := mustSubscriptionService(t, repo)
	businessID := uuid.New()
	plan := seedPlan(repo, businessID, false)

	_, err := svc.Enroll(context.Background(), businessID, EnrollRequest{
		PlanID:        plan.ID,
		CustomerEmail: "jordan@example.com",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestEnrollMapsDuplicateActiveToConflict(t *testing.T) {
	repo := newStubSubscriptionRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_customer_subscriptions_active"`)
	svc := mustSubscriptionService(t, repo)
	businessID := uuid.New()
	plan := seedPlan(repo, businessID, true)

	_, err := svc.Enroll(context.Background(), businessID, EnrollRequest{
		PlanID:        plan.ID,
		CustomerEmail: "jordan@example.com",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestEnrollUnknownPlanNotFound(t *testing.T) {
	repo := newStubSubscriptionRepo()
	svc := mustSubscriptionService(t, repo)

	_, err := svc.Enroll(context.Background(), uuid.New(), EnrollRequest{
		PlanID:        uuid.New(),
		CustomerEmail: "jordan@example.com",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPauseResumeCancelLifecycle(t *testing.T) {
	repo := newStubSubscriptionRepo()
	svc := mustSubscriptionService(t, repo)
	businessID := uuid.New()
	sub := &models.CustomerSubscription{
		ID:            uuid.New(),
		BusinessID:    businessID,
		PlanID:        uuid.New(),
		CustomerEmail: "jordan@example.com",
		Status:        enums.SubscriptionStatusActive,
		StartedAt:     time.Now().UTC(),
	}
	repo.subscriptions[sub.ID] = sub

	paused, err := svc.Pause(context.Background(), businessID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusPaused, paused.Status)

	resumed, err := svc.Resume(context.Background(), businessID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusActive, resumed.Status)

	cancelled, err := svc.Cancel(context.Background(), businessID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt, "cancelled_at should be set")

	_, err = svc.Cancel(context.Background(), businessID, sub.ID)
	assert.Error(t, err, "cancelling a cancelled subscription should fail")
}

func TestResumeMapsActiveCollisionToConflict(t *testing.T) {
	repo := newStubSubscriptionRepo()
	repo.updateErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_customer_subscriptions_active"`)
	svc := mustSubscriptionService(t, repo)
	businessID := uuid.New()
	sub := &models.CustomerSubscription{
		ID:            uuid.New(),
		BusinessID:    businessID,
		PlanID:        uuid.New(),
		CustomerEmail: "jordan@example.com",
		Status:        enums.SubscriptionStatusPaused,
		StartedAt:     time.Now().UTC(),
	}
	repo.subscriptions[sub.ID] = sub

	_, err := svc.Resume(context.Background(), businessID, sub.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
