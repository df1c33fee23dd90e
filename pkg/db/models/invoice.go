package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	"github.com/get-hunter/hero365-app-sub002/pkg/types"
)

// Invoice bills a contact for completed work.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID    uuid.UUID           `gorm:"column:business_id;type:uuid;not null"`
	ContactID     *uuid.UUID          `gorm:"column:contact_id;type:uuid"`
	JobID         *uuid.UUID          `gorm:"column:job_id;type:uuid"`
	EstimateID    *uuid.UUID          `gorm:"column:estimate_id;type:uuid"`
	TemplateID    *uuid.UUID          `gorm:"column:template_id;type:uuid"`
	InvoiceNumber string              `gorm:"column:invoice_number;not null"`
	Status        enums.InvoiceStatus `gorm:"column:status;not null;default:'draft'"`
	RecipientData types.JSONMap       `gorm:"column:recipient_data;type:jsonb"`
	Subtotal      decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	TaxAmount     decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	AmountPaid    decimal.Decimal     `gorm:"column:amount_paid;type:numeric(12,2);not null;default:0"`
	DueDate       *time.Time          `gorm:"column:due_date"`
	SentAt        *time.Time          `gorm:"column:sent_at"`
	PaidAt        *time.Time          `gorm:"column:paid_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// InvoiceLineItem is one priced row on an invoice.
type InvoiceLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null"`
	Position    int             `gorm:"column:position;not null;default:0"`
	Description string          `gorm:"column:description;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
