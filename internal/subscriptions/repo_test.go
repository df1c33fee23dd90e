package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

func setupSubscriptionsTestDB(t *testing.T) *Repository {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	plans := `
CREATE TABLE IF NOT EXISTS membership_plans (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  billing_cycle TEXT NOT NULL DEFAULT 'monthly',
  price NUMERIC NOT NULL DEFAULT 0,
  benefits TEXT,
  discount_percent NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	subs := `
CREATE TABLE IF NOT EXISTS customer_subscriptions (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  plan_id TEXT NOT NULL,
  contact_id TEXT,
  customer_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  started_at DATETIME NOT NULL,
  cancelled_at DATETIME,
  expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(plans).Error)
	require.NoError(t, conn.Exec(subs).Error)

	return &Repository{db: conn}
}

func insertPlan(t *testing.T, repo *Repository, businessID uuid.UUID, name string, active bool, created time.Time) *models.MembershipPlan {
	t.Helper()
	plan := &models.MembershipPlan{
		ID:           uuid.New(),
		BusinessID:   businessID,
		Name:         name,
		BillingCycle: enums.BillingCycleMonthly,
		Price:        decimal.RequireFromString("29.00"),
		IsActive:     active,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, repo.db.Create(plan).Error)
	return plan
}

func TestRepoPlanLifecycle(t *testing.T) {
	repo := setupSubscriptionsTestDB(t)
	businessID := uuid.New()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	gold := insertPlan(t, repo, businessID, "Gold", true, base)
	silver := insertPlan(t, repo, businessID, "Silver", true, base.Add(time.Hour))
	legacy := insertPlan(t, repo, businessID, "Legacy", false, base.Add(2*time.Hour))
	insertPlan(t, repo, uuid.New(), "Foreign", true, base)

	active, err := repo.ListPlans(ctx, businessID, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, silver.ID, active[0].ID, "newest active plan first")

	all, err := repo.ListPlans(ctx, businessID, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, legacy.ID, all[2].ID, "inactive plans sort last")

	require.NoError(t, repo.RetirePlan(ctx, businessID, gold.ID))
	active, err = repo.ListPlans(ctx, businessID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, silver.ID, active[0].ID)

	got, err := repo.FindPlanByID(ctx, businessID, gold.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = repo.FindPlanByID(ctx, uuid.New(), gold.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoListSubscriptionsFilters(t *testing.T) {
	repo := setupSubscriptionsTestDB(t)
	businessID := uuid.New()
	planID := uuid.New()
	ctx := context.Background()

	base := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	seed := func(email string, status enums.SubscriptionStatus, created time.Time) *models.CustomerSubscription {
		sub := &models.CustomerSubscription{
			ID:            uuid.New(),
			BusinessID:    businessID,
			PlanID:        planID,
			CustomerEmail: email,
			Status:        status,
			StartedAt:     created,
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		require.NoError(t, repo.db.Create(sub).Error)
		return sub
	}
	activeSub := seed("Pat@Example.com", enums.SubscriptionStatusActive, base)
	cancelledSub := seed("lee@example.com", enums.SubscriptionStatusCancelled, base.Add(time.Hour))

	foreign := &models.CustomerSubscription{
		ID:            uuid.New(),
		BusinessID:    uuid.New(),
		PlanID:        planID,
		CustomerEmail: "pat@example.com",
		Status:        enums.SubscriptionStatusActive,
		StartedAt:     base,
	}
	require.NoError(t, repo.db.Create(foreign).Error)

	all, err := repo.ListSubscriptions(ctx, businessID, nil, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, cancelledSub.ID, all[0].ID, "newest first")

	status := enums.SubscriptionStatusActive
	actives, err := repo.ListSubscriptions(ctx, businessID, &status, "")
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, activeSub.ID, actives[0].ID)

	byEmail, err := repo.ListSubscriptions(ctx, businessID, nil, "PAT@EXAMPLE.COM")
	require.NoError(t, err)
	require.Len(t, byEmail, 1, "email match is case insensitive")
	assert.Equal(t, activeSub.ID, byEmail[0].ID)
}

func TestRepoUpdateSubscriptionIsBusinessScoped(t *testing.T) {
	repo := setupSubscriptionsTestDB(t)
	businessID := uuid.New()
	ctx := context.Background()

	sub := &models.CustomerSubscription{
		ID:            uuid.New(),
		BusinessID:    businessID,
		PlanID:        uuid.New(),
		CustomerEmail: "pat@example.com",
		Status:        enums.SubscriptionStatusActive,
		StartedAt:     time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateSubscription(ctx, sub))

	cancelledAt := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateSubscription(ctx, uuid.New(), sub.ID, map[string]any{
		"status": enums.SubscriptionStatusCancelled,
	}))
	got, err := repo.FindSubscriptionByID(ctx, businessID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusActive, got.Status, "foreign business must not update the row")

	require.NoError(t, repo.UpdateSubscription(ctx, businessID, sub.ID, map[string]any{
		"status":       enums.SubscriptionStatusCancelled,
		"cancelled_at": cancelledAt,
	}))
	got, err = repo.FindSubscriptionByID(ctx, businessID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SubscriptionStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.WithinDuration(t, cancelledAt, *got.CancelledAt, time.Second)
}
