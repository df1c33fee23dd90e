package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
)

// NextSequence reserves the next number from the business's counter for the
// given document type. The counter row is upserted and then locked so
// concurrent issuers never hand out the same number; call inside the
// transaction that creates the document.
func NextSequence(ctx context.Context, tx *gorm.DB, businessID uuid.UUID, documentType string) (int64, error) {
	counter := models.DocumentCounter{
		BusinessID:   businessID,
		DocumentType: documentType,
		NextNumber:   1,
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "document_type"}},
			DoNothing: true,
		}).
		Create(&counter).Error
	if err != nil {
		return 0, fmt.Errorf("seed %s counter: %w", documentType, err)
	}

	var reserved models.DocumentCounter
	err = tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("business_id = ? AND document_type = ?", businessID, documentType).
		First(&reserved).Error
	if err != nil {
		return 0, fmt.Errorf("lock %s counter: %w", documentType, err)
	}

	err = tx.WithContext(ctx).
		Model(&models.DocumentCounter{}).
		Where("business_id = ? AND document_type = ?", businessID, documentType).
		UpdateColumn("next_number", reserved.NextNumber+1).Error
	if err != nil {
		return 0, fmt.Errorf("advance %s counter: %w", documentType, err)
	}

	return reserved.NextNumber, nil
}
