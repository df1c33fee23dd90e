package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
)

// Repository exposes catalog taxonomy, business service and coverage
// persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns the trade taxonomy in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.TradeCategory, error) {
	var rows []models.TradeCategory
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActivities returns all activities, optionally narrowed to a category.
func (r *Repository) ListActivities(ctx context.Context, categoryID *uuid.UUID) ([]models.TradeActivity, error) {
	q := r.db.WithContext(ctx)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var rows []models.TradeActivity
	err := q.Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTemplates returns the system service templates for an activity.
func (r *Repository) ListTemplates(ctx context.Context, activityID uuid.UUID) ([]models.ServiceTemplate, error) {
	var rows []models.ServiceTemplate
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTemplateByID loads one service template.
func (r *Repository) FindTemplateByID(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error) {
	var tmpl models.ServiceTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// CreateService inserts a business service offering.
func (r *Repository) CreateService(ctx context.Context, svc *models.BusinessService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

// FindServiceByID loads a business service scoped to the business.
func (r *Repository) FindServiceByID(ctx context.Context, businessID, id uuid.UUID) (*models.BusinessService, error) {
	var svc models.BusinessService
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListServices returns the business's offerings.
func (r *Repository) ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]models.BusinessService, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if !includeInactive {
		q = q.Where("is_active = TRUE")
	}

	var rows []models.BusinessService
	err := q.Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateService applies the provided columns.
func (r *Repository) UpdateService(ctx context.Context, businessID, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.BusinessService{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(updates).Error
}

// CreateArea inserts a coverage row. The partial unique index rejects a
// duplicate active postal code for the same business.
func (r *Repository) CreateArea(ctx context.Context, area *models.ServiceArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

// ListAreas returns the business's active coverage.
func (r *Repository) ListAreas(ctx context.Context, businessID uuid.UUID) ([]models.ServiceArea, error) {
	var rows []models.ServiceArea
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = TRUE", businessID).
		Order("postal_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveArea returns the active coverage row for a postal code, if any.
func (r *Repository) FindActiveArea(ctx context.Context, businessID uuid.UUID, postalCode string) (*models.ServiceArea, error) {
	var area models.ServiceArea
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND postal_code = ? AND is_active = TRUE", businessID, postalCode).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// DeactivateArea retires coverage for a postal code.
func (r *Repository) DeactivateArea(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceArea{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Update("is_active", false).Error
}
