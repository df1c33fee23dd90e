package enums

import "fmt"

// TemplateType identifies which billing document a template renders.
type TemplateType string

const (
	TemplateTypeEstimate TemplateType = "estimate"
	TemplateTypeInvoice  TemplateType = "invoice"
)

var validTemplateTypes = []TemplateType{
	TemplateTypeEstimate,
	TemplateTypeInvoice,
}

// String implements fmt.Stringer.
func (t TemplateType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TemplateType.
func (t TemplateType) IsValid() bool {
	for _, candidate := range validTemplateTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTemplateType converts raw input into a TemplateType.
func ParseTemplateType(value string) (TemplateType, error) {
	for _, candidate := range validTemplateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid template type %q", value)
}

// EstimateStatus tracks an estimate from draft to conversion.
type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusSent      EstimateStatus = "sent"
	EstimateStatusViewed    EstimateStatus = "viewed"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusDeclined  EstimateStatus = "declined"
	EstimateStatusExpired   EstimateStatus = "expired"
	EstimateStatusConverted EstimateStatus = "converted"
)

var validEstimateStatuses = []EstimateStatus{
	EstimateStatusDraft,
	EstimateStatusSent,
	EstimateStatusViewed,
	EstimateStatusApproved,
	EstimateStatusDeclined,
	EstimateStatusExpired,
	EstimateStatusConverted,
}

// String implements fmt.Stringer.
func (e EstimateStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is known.
func (e EstimateStatus) IsValid() bool {
	for _, candidate := range validEstimateStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// InvoiceStatus tracks an invoice through collection.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusViewed        InvoiceStatus = "viewed"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusVoid          InvoiceStatus = "void"
)

var validInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusViewed,
	InvoiceStatusPartiallyPaid,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusVoid,
}

// String implements fmt.Stringer.
func (i InvoiceStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is known.
func (i InvoiceStatus) IsValid() bool {
	for _, candidate := range validInvoiceStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}
