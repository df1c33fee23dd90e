package billing

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
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

func setupBillingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	estimates := `
CREATE TABLE IF NOT EXISTS estimates (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  contact_id TEXT,
  job_id TEXT,
  template_id TEXT,
  estimate_number TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  recipient_data TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  valid_until DATETIME,
  sent_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	estimateItems := `
CREATE TABLE IF NOT EXISTS estimate_line_items (
  id TEXT PRIMARY KEY,
  estimate_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  description TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	invoices := `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL,
  contact_id TEXT,
  job_id TEXT,
  estimate_id TEXT,
  template_id TEXT,
  invoice_number TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  recipient_data TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  amount_paid NUMERIC NOT NULL DEFAULT 0,
  due_date DATETIME,
  sent_at DATETIME,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	invoiceItems := `
CREATE TABLE IF NOT EXISTS invoice_line_items (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  description TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	for _, ddl := range []string{estimates, estimateItems, invoices, invoiceItems} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func estimateItem(position int, description, unitPrice string) models.EstimateLineItem {
	return models.EstimateLineItem{
		ID:          uuid.New(),
		Position:    position,
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString(unitPrice),
		Amount:      decimal.RequireFromString(unitPrice),
	}
}

func TestRepoCreateEstimateWithLineItems(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	estimate := &models.Estimate{
		ID:             uuid.New(),
		BusinessID:     businessID,
		EstimateNumber: "EST-000001",
		Status:         enums.EstimateStatusDraft,
		Subtotal:       decimal.RequireFromString("535.00"),
		Total:          decimal.RequireFromString("535.00"),
	}
	items := []models.EstimateLineItem{
		estimateItem(0, "Water heater install", "450.00"),
		estimateItem(1, "Permit fee", "85.00"),
	}
	require.NoError(t, repo.CreateEstimate(ctx, estimate, items))

	rows, err := repo.ListEstimateLineItems(ctx, estimate.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, estimate.ID, rows[0].EstimateID)
	assert.Equal(t, "Water heater install", rows[0].Description)
	assert.Equal(t, "Permit fee", rows[1].Description)
}

func TestRepoListEstimatesFilters(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	contactID := uuid.New()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	seed := func(number string, status enums.EstimateStatus, contact *uuid.UUID, created time.Time) *models.Estimate {
		est := &models.Estimate{
			ID:             uuid.New(),
			BusinessID:     businessID,
			ContactID:      contact,
			EstimateNumber: number,
			Status:         status,
			CreatedAt:      created,
			UpdatedAt:      created,
		}
		require.NoError(t, db.Create(est).Error)
		return est
	}
	draft := seed("EST-000001", enums.EstimateStatusDraft, &contactID, base)
	sent := seed("EST-000002", enums.EstimateStatusSent, nil, base.Add(time.Hour))

	foreign := &models.Estimate{
		ID:             uuid.New(),
		BusinessID:     uuid.New(),
		EstimateNumber: "EST-000001",
		Status:         enums.EstimateStatusDraft,
	}
	require.NoError(t, db.Create(foreign).Error)

	all, next, err := repo.ListEstimates(ctx, businessID, EstimateFilter{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, sent.ID, all[0].ID, "newest first")
	assert.Empty(t, next)

	status := enums.EstimateStatusDraft
	drafts, _, err := repo.ListEstimates(ctx, businessID, EstimateFilter{Status: &status}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	byContact, _, err := repo.ListEstimates(ctx, businessID, EstimateFilter{ContactID: &contactID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, draft.ID, byContact[0].ID)

	firstPage, cursor, err := repo.ListEstimates(ctx, businessID, EstimateFilter{}, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, firstPage, 1)
	require.NotEmpty(t, cursor)
	assert.Equal(t, sent.ID, firstPage[0].ID)

	secondPage, last, err := repo.ListEstimates(ctx, businessID, EstimateFilter{}, pagination.Params{Limit: 1, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, draft.ID, secondPage[0].ID)
	assert.Empty(t, last)
}

func TestRepoUpdateEstimateIsBusinessScoped(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	estimate := &models.Estimate{
		ID:             uuid.New(),
		BusinessID:     businessID,
		EstimateNumber: "EST-000009",
		Status:         enums.EstimateStatusDraft,
	}
	require.NoError(t, db.Create(estimate).Error)

	require.NoError(t, repo.UpdateEstimate(ctx, uuid.New(), estimate.ID, map[string]any{"status": enums.EstimateStatusSent}))
	got, err := repo.FindEstimateByID(ctx, businessID, estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.EstimateStatusDraft, got.Status, "foreign business must not update the row")

	require.NoError(t, repo.UpdateEstimate(ctx, businessID, estimate.ID, map[string]any{"status": enums.EstimateStatusSent}))
	got, err = repo.FindEstimateByID(ctx, businessID, estimate.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.EstimateStatusSent, got.Status)
}

func TestRepoInvoicePersistenceRoundTrip(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	invoice := &models.Invoice{
		ID:            uuid.New(),
		BusinessID:    businessID,
		InvoiceNumber: "INV-000001",
		Status:        enums.InvoiceStatusDraft,
		Subtotal:      decimal.RequireFromString("100.00"),
		Total:         decimal.RequireFromString("100.00"),
		AmountPaid:    decimal.Zero,
	}
	items := []models.InvoiceLineItem{{
		ID:          uuid.New(),
		Description: "Service call",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString("100.00"),
		Amount:      decimal.RequireFromString("100.00"),
	}}
	require.NoError(t, repo.CreateInvoice(ctx, invoice, items))

	rows, err := repo.ListInvoiceLineItems(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, invoice.ID, rows[0].InvoiceID)

	require.NoError(t, repo.UpdateInvoice(ctx, businessID, invoice.ID, map[string]any{
		"status":      enums.InvoiceStatusPaid,
		"amount_paid": decimal.RequireFromString("100.00"),
	}))
	got, err := repo.FindInvoiceByID(ctx, businessID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusPaid, got.Status)
	assert.True(t, got.AmountPaid.Equal(decimal.RequireFromString("100.00")))

	_, err = repo.FindInvoiceByID(ctx, uuid.New(), invoice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
