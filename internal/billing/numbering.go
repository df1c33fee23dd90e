package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Document number prefixes.
const (
	estimatePrefix = "EST"
	invoicePrefix  = "INV"
)

// FormatDocumentNumber renders a sequential value as a display number,
// e.g. EST-000123.
func FormatDocumentNumber(docType enums.TemplateType, n int64) string {
	prefix := estimatePrefix
	if docType == enums.TemplateTypeInvoice {
		prefix = invoicePrefix
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// NextDocumentNumber reserves the next number for the business and document
// type; call inside the transaction that creates the document.
func NextDocumentNumber(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, docType enums.TemplateType) (string, error) {
	n, err := db.NextSequence(ctx, tx, businessID, docType.String())
	if err != nil {
		return "", err
	}
	return FormatDocumentNumber(docType, n), nil
}
