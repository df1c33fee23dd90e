package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/internal/templates"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/pagination"
)

// templateResolver picks the template to render a document with when the
// caller does not name one.
type templateResolver interface {
	ResolveDefault(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*templates.TemplateDTO, error)
}

// EstimateService manages priced proposals.
type EstimateService interface {
	Create(ctx context.Context, businessID uuid.UUID, req CreateEstimateRequest) (*EstimateDTO, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error)
	List(ctx context.Context, businessID uuid.UUID, filter EstimateFilter, page pagination.Params) (*EstimateList, error)
	Send(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error)
	Approve(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error)
	Decline(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error)
	ConvertToInvoice(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error)
}

// EstimateServiceParams bundles the dependencies for the estimate service.
type EstimateServiceParams struct {
	DB        *db.Client
	Templates templateResolver
}

type estimateService struct {
	db        *db.Client
	templates templateResolver
}

// NewEstimateService constructs the estimate service.
func NewEstimateService(params EstimateServiceParams) (EstimateService, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &estimateService{db: params.DB, templates: params.Templates}, nil
}

func (s *estimateService) Create(ctx context.Context, businessID uuid.UUID, req CreateEstimateRequest) (*EstimateDTO, error) {
	lines, err := computeLineItems(req.LineItems)
	if err != nil {
		return nil, err
	}
	totals, err := computeTotals(lines, req.TaxRate)
	if err != nil {
		return nil, err
	}

	templateID, err := pickTemplate(ctx, s.templates, businessID, enums.TemplateTypeEstimate, req.TemplateID)
	if err != nil {
		return nil, err
	}

	var (
		estimate *models.Estimate
		items    []models.EstimateLineItem
	)
	err = s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		number, err := NextDocumentNumber(ctx, tx, businessID, enums.TemplateTypeEstimate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve estimate number")
		}

		estimate = &models.Estimate{
			BusinessID:     businessID,
			ContactID:      req.ContactID,
			JobID:          req.JobID,
			TemplateID:     templateID,
			EstimateNumber: number,
			Status:         enums.EstimateStatusDraft,
			RecipientData:  req.RecipientData,
			Subtotal:       totals.Subtotal,
			TaxAmount:      totals.TaxAmount,
			Total:          totals.Total,
			ValidUntil:     req.ValidUntil,
		}
		items = make([]models.EstimateLineItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.EstimateLineItem{
				Position:    line.Position,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Amount:      line.Amount,
			})
		}
		if err := repo.CreateEstimate(ctx, estimate, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create estimate")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimateFromModel(estimate, items), nil
}

func (s *estimateService) Get(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error) {
	repo := NewRepository(s.db.DB())
	estimate, err := repo.FindEstimateByID(ctx, businessID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load estimate")
	}
	items, err := repo.ListEstimateLineItems(ctx, estimate.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load estimate line items")
	}
	return estimateFromModel(estimate, items), nil
}

func (s *estimateService) List(ctx context.Context, businessID uuid.UUID, filter EstimateFilter, page pagination.Params) (*EstimateList, error) {
	repo := NewRepository(s.db.DB())
	rows, next, err := repo.ListEstimates(ctx, businessID, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list estimates")
	}
	out := make([]EstimateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *estimateFromModel(&rows[i], nil))
	}
	return &EstimateList{Estimates: out, NextCursor: next}, nil
}

func (s *estimateService) Send(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error) {
	now := time.Now().UTC()
	return s.transition(ctx, businessID, id, enums.EstimateStatusSent,
		[]enums.EstimateStatus{enums.EstimateStatusDraft},
		map[string]any{"sent_at": now})
}

func (s *estimateService) Approve(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error) {
	return s.transition(ctx, businessID, id, enums.EstimateStatusApproved,
		[]enums.EstimateStatus{enums.EstimateStatusSent, enums.EstimateStatusViewed}, nil)
}

func (s *estimateService) Decline(ctx context.Context, businessID, id uuid.UUID) (*EstimateDTO, error) {
	return s.transition(ctx, businessID, id, enums.EstimateStatusDeclined,
		[]enums.EstimateStatus{enums.EstimateStatusSent, enums.EstimateStatusViewed}, nil)
}

// ConvertToInvoice copies an approved estimate into a new draft invoice and
// marks the estimate converted. Both writes share one transaction so a
// failed invoice insert never strands a converted estimate.
func (s *estimateService) ConvertToInvoice(ctx context.Context, businessID, id uuid.UUID) (*InvoiceDTO, error) {
	var (
		invoice *models.Invoice
		items   []models.InvoiceLineItem
	)
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		estimate, err := repo.FindEstimateByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load estimate")
		}
		if estimate.Status != enums.EstimateStatusApproved {
			return pkgerrors.New(pkgerrors.CodeValidation, "only approved estimates can be converted")
		}

		estimateItems, err := repo.ListEstimateLineItems(ctx, estimate.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load estimate line items")
		}

		number, err := NextDocumentNumber(ctx, tx, businessID, enums.TemplateTypeInvoice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve invoice number")
		}

		templateID, err := pickTemplate(ctx, s.templates, businessID, enums.TemplateTypeInvoice, nil)
		if err != nil {
			return err
		}

		invoice = &models.Invoice{
			BusinessID:    businessID,
			ContactID:     estimate.ContactID,
			JobID:         estimate.JobID,
			EstimateID:    &estimate.ID,
			TemplateID:    templateID,
			InvoiceNumber: number,
			Status:        enums.InvoiceStatusDraft,
			RecipientData: estimate.RecipientData,
			Subtotal:      estimate.Subtotal,
			TaxAmount:     estimate.TaxAmount,
			Total:         estimate.Total,
		}
		items = make([]models.InvoiceLineItem, 0, len(estimateItems))
		for _, item := range estimateItems {
			items = append(items, models.InvoiceLineItem{
				Position:    item.Position,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      item.Amount,
			})
		}
		if err := repo.CreateInvoice(ctx, invoice, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create invoice from estimate")
		}

		err = repo.UpdateEstimate(ctx, businessID, id, map[string]any{"status": enums.EstimateStatusConverted})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark estimate converted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceFromModel(invoice, items), nil
}

func (s *estimateService) transition(ctx context.Context, businessID, id uuid.UUID, to enums.EstimateStatus, from []enums.EstimateStatus, extra map[string]any) (*EstimateDTO, error) {
	var updated *models.Estimate
	err := s.db.WithTenantTx(ctx, businessID, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		estimate, err := repo.FindEstimateByID(ctx, businessID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load estimate")
		}

		allowed := false
		for _, status := range from {
			if estimate.Status == status {
				allowed = true
				break
			}
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot move estimate from %s to %s", estimate.Status, to))
		}

		updates := map[string]any{"status": to}
		for k, v := range extra {
			updates[k] = v
		}
		if err := repo.UpdateEstimate(ctx, businessID, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update estimate status")
		}

		estimate.Status = to
		if sentAt, ok := extra["sent_at"].(time.Time); ok {
			estimate.SentAt = &sentAt
		}
		updated = estimate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimateFromModel(updated, nil), nil
}

// pickTemplate keeps an explicit template choice, otherwise falls back to
// the business default for the document type. Having no template at all is
// fine; rendering falls back to the system layout downstream.
func pickTemplate(ctx context.Context, resolver templateResolver, businessID uuid.UUID, docType enums.TemplateType, explicit *uuid.UUID) (*uuid.UUID, error) {
	if explicit != nil {
		return explicit, nil
	}
	if resolver == nil {
		return nil, nil
	}
	resolved, err := resolver.ResolveDefault(ctx, businessID, docType)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve default template")
	}
	return &resolved.ID, nil
}
