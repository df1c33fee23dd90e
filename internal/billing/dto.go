package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// LineItemInput is one inbound priced row.
type LineItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineItemDTO is the transport shape for a persisted line item.
type LineItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateEstimateRequest is the inbound payload for creating an estimate.
type CreateEstimateRequest struct {
	ContactID     *uuid.UUID       `json:"contact_id,omitempty"`
	JobID         *uuid.UUID       `json:"job_id,omitempty"`
	TemplateID    *uuid.UUID       `json:"template_id,omitempty"`
	RecipientData types.JSONMap    `json:"recipient_data,omitempty"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	ValidUntil    *time.Time       `json:"valid_until,omitempty"`
	LineItems     []LineItemInput  `json:"line_items" validate:"required,min=1,dive"`
}

// CreateInvoiceRequest is the inbound payload for creating an invoice.
type CreateInvoiceRequest struct {
	ContactID     *uuid.UUID       `json:"contact_id,omitempty"`
	JobID         *uuid.UUID       `json:"job_id,omitempty"`
	TemplateID    *uuid.UUID       `json:"template_id,omitempty"`
	RecipientData types.JSONMap    `json:"recipient_data,omitempty"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	LineItems     []LineItemInput  `json:"line_items" validate:"required,min=1,dive"`
}

// RecordPaymentRequest applies a payment against an invoice.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// EstimateDTO is the transport shape for an estimate with its line items.
type EstimateDTO struct {
	ID             uuid.UUID            `json:"id"`
	BusinessID     uuid.UUID            `json:"business_id"`
	ContactID      *uuid.UUID           `json:"contact_id,omitempty"`
	JobID          *uuid.UUID           `json:"job_id,omitempty"`
	TemplateID     *uuid.UUID           `json:"template_id,omitempty"`
	EstimateNumber string               `json:"estimate_number"`
	Status         enums.EstimateStatus `json:"status"`
	RecipientData  types.JSONMap        `json:"recipient_data,omitempty"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	Total          decimal.Decimal      `json:"total"`
	ValidUntil     *time.Time           `json:"valid_until,omitempty"`
	SentAt         *time.Time           `json:"sent_at,omitempty"`
	LineItems      []LineItemDTO        `json:"line_items,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// EstimateList wraps one page of estimates plus the cursor for the next page.
type EstimateList struct {
	Estimates  []EstimateDTO `json:"estimates"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// InvoiceDTO is the transport shape for an invoice with its line items.
type InvoiceDTO struct {
	ID            uuid.UUID           `json:"id"`
	BusinessID    uuid.UUID           `json:"business_id"`
	ContactID     *uuid.UUID          `json:"contact_id,omitempty"`
	JobID         *uuid.UUID          `json:"job_id,omitempty"`
	EstimateID    *uuid.UUID          `json:"estimate_id,omitempty"`
	TemplateID    *uuid.UUID          `json:"template_id,omitempty"`
	InvoiceNumber string              `json:"invoice_number"`
	Status        enums.InvoiceStatus `json:"status"`
	RecipientData types.JSONMap       `json:"recipient_data,omitempty"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	Total         decimal.Decimal     `json:"total"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	SentAt        *time.Time          `json:"sent_at,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	LineItems     []LineItemDTO       `json:"line_items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// InvoiceList wraps one page of invoices plus the cursor for the next page.
type InvoiceList struct {
	Invoices   []InvoiceDTO `json:"invoices"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func estimateFromModel(m *models.Estimate, items []models.EstimateLineItem) *EstimateDTO {
	if m == nil {
		return nil
	}

	dto := &EstimateDTO{
		ID:             m.ID,
		BusinessID:     m.BusinessID,
		ContactID:      m.ContactID,
		JobID:          m.JobID,
		TemplateID:     m.TemplateID,
		EstimateNumber: m.EstimateNumber,
		Status:         m.Status,
		RecipientData:  m.RecipientData,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		Total:          m.Total,
		ValidUntil:     m.ValidUntil,
		SentAt:         m.SentAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for i := range items {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:          items[i].ID,
			Position:    items[i].Position,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			UnitPrice:   items[i].UnitPrice,
			Amount:      items[i].Amount,
		})
	}
	return dto
}

func invoiceFromModel(m *models.Invoice, items []models.InvoiceLineItem) *InvoiceDTO {
	if m == nil {
		return nil
	}

	dto := &InvoiceDTO{
		ID:            m.ID,
		BusinessID:    m.BusinessID,
		ContactID:     m.ContactID,
		JobID:         m.JobID,
		EstimateID:    m.EstimateID,
		TemplateID:    m.TemplateID,
		InvoiceNumber: m.InvoiceNumber,
		Status:        m.Status,
		RecipientData: m.RecipientData,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		AmountPaid:    m.AmountPaid,
		DueDate:       m.DueDate,
		SentAt:        m.SentAt,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range items {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:          items[i].ID,
			Position:    items[i].Position,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			UnitPrice:   items[i].UnitPrice,
			Amount:      items[i].Amount,
		})
	}
	return dto
}
