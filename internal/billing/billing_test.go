package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "EST-000123", FormatDocumentNumber(enums.TemplateTypeEstimate, 123))
	assert.Equal(t, "INV-000001", FormatDocumentNumber(enums.TemplateTypeInvoice, 1))
	assert.Equal(t, "INV-1234567", FormatDocumentNumber(enums.TemplateTypeInvoice, 1234567))
}

func TestComputeLineItemsExtendsAmounts(t *testing.T) {
	lines, err := computeLineItems([]LineItemInput{
		{Description: "Water heater install", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("450.00")},
		{Description: "Permit fee", UnitPrice: decimal.RequireFromString("85.50")},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("900.00")), "first amount = %s", lines[0].Amount)
	assert.True(t, lines[1].Quantity.Equal(decimal.NewFromInt(1)), "zero quantity should default to 1, got %s", lines[1].Quantity)
	assert.Equal(t, 1, lines[1].Position)
}

func TestComputeLineItemsRejectsBadRows(t *testing.T) {
	_, err := computeLineItems(nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "empty items: got %v", err)

	_, err = computeLineItems([]LineItemInput{
		{Description: "  ", UnitPrice: decimal.NewFromInt(10)},
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "blank description: got %v", err)

	_, err = computeLineItems([]LineItemInput{
		{Description: "Refund", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("-5.00")},
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "negative price: got %v", err)
}

func TestComputeTotalsAppliesTaxRate(t *testing.T) {
	lines, err := computeLineItems([]LineItemInput{
		{Description: "Service call", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100.00")},
		{Description: "Parts", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("19.99")},
	})
	require.NoError(t, err)

	rate := decimal.RequireFromString("8.25")
	totals, err := computeTotals(lines, &rate)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("159.97")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("13.20")), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("173.17")), "total = %s", totals.Total)

	noTax, err := computeTotals(lines, nil)
	require.NoError(t, err)
	assert.True(t, noTax.TaxAmount.IsZero())
	assert.True(t, noTax.Total.Equal(noTax.Subtotal))

	bad := decimal.RequireFromString("120")
	_, err = computeTotals(lines, &bad)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "rate over 100: got %v", err)
}

func TestApplyPaymentPartialThenSettled(t *testing.T) {
	invoice := &models.Invoice{
		Status:     enums.InvoiceStatusSent,
		Total:      decimal.RequireFromString("500.00"),
		AmountPaid: decimal.Zero,
	}

	result, err := applyPayment(invoice, decimal.RequireFromString("200.00"))
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusPartiallyPaid, result.Status)
	assert.Nil(t, result.PaidAt, "partial payment should not set paid_at")

	invoice.Status = result.Status
	invoice.AmountPaid = result.AmountPaid

	result, err = applyPayment(invoice, decimal.RequireFromString("300.00"))
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusPaid, result.Status)
	assert.NotNil(t, result.PaidAt, "settling payment should set paid_at")
	assert.True(t, result.AmountPaid.Equal(invoice.Total), "amount_paid = %s, want %s", result.AmountPaid, invoice.Total)
}

func TestApplyPaymentRejectsOverpayAndBadStatus(t *testing.T) {
	invoice := &models.Invoice{
		Status:     enums.InvoiceStatusSent,
		Total:      decimal.RequireFromString("100.00"),
		AmountPaid: decimal.RequireFromString("90.00"),
	}
	_, err := applyPayment(invoice, decimal.RequireFromString("20.00"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "overpay: got %v", err)

	draft := &models.Invoice{
		Status: enums.InvoiceStatusDraft,
		Total:  decimal.RequireFromString("100.00"),
	}
	_, err = applyPayment(draft, decimal.RequireFromString("10.00"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "draft invoice: got %v", err)
}
