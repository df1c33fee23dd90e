package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

// Repository exposes estimate and invoice persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateEstimate inserts the estimate and its line items.
func (r *Repository) CreateEstimate(ctx context.Context, estimate *models.Estimate, items []models.EstimateLineItem) error {
	if err := r.db.WithContext(ctx).Create(estimate).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].EstimateID = estimate.ID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindEstimateByID loads an estimate scoped to the business.
func (r *Repository) FindEstimateByID(ctx context.Context, businessID, id uuid.UUID) (*models.Estimate, error) {
	var estimate models.Estimate
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// ListEstimateLineItems returns the rows in display order.
func (r *Repository) ListEstimateLineItems(ctx context.Context, estimateID uuid.UUID) ([]models.EstimateLineItem, error) {
	var rows []models.EstimateLineItem
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// EstimateFilter narrows an estimate listing.
type EstimateFilter struct {
	Status    *enums.EstimateStatus
	ContactID *uuid.UUID
}

// ListEstimates returns one page of estimates for the business plus the
// cursor for the next page.
func (r *Repository) ListEstimates(ctx context.Context, businessID uuid.UUID, filter EstimateFilter, page pagination.Params) ([]models.Estimate, string, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Estimate
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	rows, next := pagination.TrimPage(rows, page.Limit, func(e models.Estimate) pagination.Cursor {
		return pagination.Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
	})
	return rows, next, nil
}

// UpdateEstimate applies the provided columns.
func (r *Repository) UpdateEstimate(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Estimate{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}

// CreateInvoice inserts the invoice and its line items.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice, items []models.InvoiceLineItem) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindInvoiceByID loads an invoice scoped to the business.
func (r *Repository) FindInvoiceByID(ctx context.Context, businessID, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoiceLineItems returns the rows in display order.
func (r *Repository) ListInvoiceLineItems(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceLineItem, error) {
	var rows []models.InvoiceLineItem
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InvoiceFilter narrows an invoice listing.
type InvoiceFilter struct {
	Status    *enums.InvoiceStatus
	ContactID *uuid.UUID
}

// ListInvoices returns one page of invoices for the business plus the cursor
// for the next page.
func (r *Repository) ListInvoices(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter, page pagination.Params) ([]models.Invoice, string, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Invoice
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(page.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	rows, next := pagination.TrimPage(rows, page.Limit, func(inv models.Invoice) pagination.Cursor {
		return pagination.Cursor{CreatedAt: inv.CreatedAt, ID: inv.ID}
	})
	return rows, next, nil
}

// UpdateInvoice applies the provided columns.
func (r *Repository) UpdateInvoice(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}
