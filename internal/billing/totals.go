package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

// computedLine is a priced row with its extended amount resolved.
type computedLine struct {
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// documentTotals holds the money summary for an estimate or invoice.
type documentTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

var decimalHundred = decimal.NewFromInt(100)

// computeLineItems validates inbound rows and extends each amount as
// quantity * unit_price rounded to cents. Positions are assigned in the
// order the rows arrived.
func computeLineItems(items []LineItemInput) ([]computedLine, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item is required")
	}

	out := make([]computedLine, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item description is required")
		}
		qty := item.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		if qty.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item quantity cannot be negative")
		}
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item unit price cannot be negative")
		}
		out = append(out, computedLine{
			Position:    i,
			Description: strings.TrimSpace(item.Description),
			Quantity:    qty,
			UnitPrice:   item.UnitPrice,
			Amount:      qty.Mul(item.UnitPrice).Round(2),
		})
	}
	return out, nil
}

// computeTotals sums the extended amounts and applies the tax rate, given as
// a percentage (8.25 means 8.25%). A nil rate means no tax.
func computeTotals(lines []computedLine, taxRate *decimal.Decimal) (documentTotals, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount)
	}

	tax := decimal.Zero
	if taxRate != nil {
		if taxRate.IsNegative() || taxRate.GreaterThan(decimalHundred) {
			return documentTotals{}, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be between 0 and 100")
		}
		tax = subtotal.Mul(*taxRate).Div(decimalHundred).Round(2)
	}

	return documentTotals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}
