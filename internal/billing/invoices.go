package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

// InvoiceService manages billing documents through collection.
type InvoiceService interface {
	Create(ctx context.Context, businessID uuid.UUID, req CreateInvoiceRequest) (*InvoiceDTO, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error)
	List(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter, page pagination.Params) (*InvoiceList, error)
	Send(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error)
	RecordPayment(ctx context.Context, businessID, id uuid.UUID, req RecordPaymentRequest) (*InvoiceDTO, error)
	Void(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error)
}

// InvoiceServiceParams bundles the dependencies for the invoice service.
type InvoiceServiceParams struct {
	DB        *db.Client
	Templates templateResolver
}

type invoiceService struct {
	db        *db.Client
	templates templateResolver
}

// NewInvoiceService constructs the invoice service.
func NewInvoiceService(params InvoiceServiceParams) (InvoiceService, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &invoiceService{db: params.DB, templates: params.Templates}, nil
}

func (s *invoiceService) Create(ctx context.Context, businessID uuid.UUID, req CreateInvoiceRequest) (*InvoiceDTO, error) {
	lines, err := computeLineItems(req.LineItems)
	if err != nil {
		return nil, err
	}
	totals, err := computeTotals(lines, req.TaxRate)
	if err != nil {
		return nil, err
	}

	templateID, err := pickTemplate(ctx, s.templates, businessID, enums.TemplateTypeInvoice, req.TemplateID)
	if err != nil {
		return nil, err
	}

	var (
		invoice *models.Invoice
		items   []models.InvoiceLineItem
	)
	err = s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		number, err := NextDocumentNumber(ctx, tx, businessID, enums.TemplateTypeInvoice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve invoice number")
		}

		invoice = &models.Invoice{
			BusinessID:    businessID,
			ContactID:     req.ContactID,
			JobID:         req.JobID,
			TemplateID:    templateID,
			InvoiceNumber: number,
			Status:        enums.InvoiceStatusDraft,
			RecipientData: req.RecipientData,
			Subtotal:      totals.Subtotal,
			TaxAmount:     totals.TaxAmount,
			Total:         totals.Total,
			DueDate:       req.DueDate,
		}
		items = make([]models.InvoiceLineItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.InvoiceLineItem{
				Position:    line.Position,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Amount:      line.Amount,
			})
		}
		if err := repo.CreateInvoice(ctx, invoice, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create invoice")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceFromModel(invoice, items), nil
}

func (s *invoiceService) Get(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error) {
	repo := NewRepository(s.db.DB())
	invoice, err := repo.FindInvoiceByID(ctx, businessID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
	}
	items, err := repo.ListInvoiceLineItems(ctx, invoice.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice line items")
	}
	return invoiceFromModel(invoice, items), nil
}

func (s *invoiceService) List(ctx context.Context, businessID uuid.UUID, filter InvoiceFilter, page pagination.Params) (*InvoiceList, error) {
	repo := NewRepository(s.db.DB())
	rows, next, err := repo.ListInvoices(ctx, businessID, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list invoices")
	}
	out := make([]InvoiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *invoiceFromModel(&rows[i], nil))
	}
	return &InvoiceList{Invoices: out, NextCursor: next}, nil
}

func (s *invoiceService) Send(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error) {
	var updated *models.Invoice
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		invoice, err := repo.FindInvoiceByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
		}
		if invoice.Status != enums.InvoiceStatusDraft {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot send invoice in status %s", invoice.Status))
		}

		now := time.Now().UTC()
		err = repo.UpdateInvoice(ctx, businessID, id, map[string]any{
			"status":  enums.InvoiceStatusSent,
			"sent_at": now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send invoice")
		}

		invoice.Status = enums.InvoiceStatusSent
		invoice.SentAt = &now
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceFromModel(updated, nil), nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, businessID, id uuid.UUID, req RecordPaymentRequest) (*InvoiceDTO, error) {
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	var updated *models.Invoice
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		invoice, err := repo.FindInvoiceByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
		}

		result, err := applyPayment(invoice, req.Amount)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"status":      result.Status,
			"amount_paid": result.AmountPaid,
		}
		if result.PaidAt != nil {
			updates["paid_at"] = *result.PaidAt
		}
		if err := repo.UpdateInvoice(ctx, businessID, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record payment")
		}

		invoice.Status = result.Status
		invoice.AmountPaid = result.AmountPaid
		invoice.PaidAt = result.PaidAt
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceFromModel(updated, nil), nil
}

func (s *invoiceService) Void(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error) {
	var updated *models.Invoice
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		invoice, err := repo.FindInvoiceByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
		}
		if invoice.Status == enums.InvoiceStatusPaid || invoice.Status == enums.InvoiceStatusVoid {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot void invoice in status %s", invoice.Status))
		}
		if invoice.AmountPaid.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot void an invoice with recorded payments")
		}

		err = repo.UpdateInvoice(ctx, businessID, id, map[string]any{"status": enums.InvoiceStatusVoid})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "void invoice")
		}

		invoice.Status = enums.InvoiceStatusVoid
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceFromModel(updated, nil), nil
}

// paymentResult is the post-payment state of an invoice.
type paymentResult struct {
	Status     enums.InvoiceStatus
	AmountPaid decimal.Decimal
	PaidAt     *time.Time
}

// applyPayment validates a payment against the invoice state and computes the
// resulting balance and status. Paying the full balance settles the invoice;
// anything less leaves it partially paid. Overpayment is rejected.
func applyPayment(invoice *models.Invoice, amount decimal.Decimal) (paymentResult, error) {
	switch invoice.Status {
	case enums.InvoiceStatusSent, enums.InvoiceStatusViewed,
		enums.InvoiceStatusPartiallyPaid, enums.InvoiceStatusOverdue:
	default:
		return paymentResult{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot record payment on invoice in status %s", invoice.Status))
	}

	newPaid := invoice.AmountPaid.Add(amount)
	if newPaid.GreaterThan(invoice.Total) {
		return paymentResult{}, pkgerrors.New(pkgerrors.CodeValidation, "payment exceeds invoice balance")
	}

	result := paymentResult{
		Status:     enums.InvoiceStatusPartiallyPaid,
		AmountPaid: newPaid,
	}
	if newPaid.Equal(invoice.Total) {
		now := time.Now().UTC()
		result.Status = enums.InvoiceStatusPaid
		result.PaidAt = &now
	}
	return result, nil
}
