package templates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

// Repository exposes document template persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a business-owned template.
func (r *Repository) Create(ctx context.Context, dto CreateTemplateDTO) (*models.DocumentTemplate, error) {
	tmpl := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(tmpl).Error; err != nil {
		return nil, err
	}
	return tmpl, nil
}

// FindByID loads a single template.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DocumentTemplate, error) {
	var tmpl models.DocumentTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ListForBusiness returns active templates visible to the business, which
// includes the shared system templates.
func (r *Repository) ListForBusiness(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) ([]models.DocumentTemplate, error) {
	var rows []models.DocumentTemplate
	err := r.db.WithContext(ctx).
		Where("template_type = ? AND is_active AND (business_id = ? OR is_system)", templateType, businessID).
		Order("is_system, name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPreferred returns the template chosen by the business preference row,
// or gorm.ErrRecordNotFound when no preference exists.
func (r *Repository) FindPreferred(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*models.DocumentTemplate, error) {
	var tmpl models.DocumentTemplate
	err := r.db.WithContext(ctx).
		Joins("JOIN business_template_preferences p ON p.template_id = document_templates.id").
		Where("p.business_id = ? AND p.template_type = ? AND document_templates.is_active", businessID, templateType).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// FindBusinessDefault returns the business-owned template flagged as default.
func (r *Repository) FindBusinessDefault(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) (*models.DocumentTemplate, error) {
	var tmpl models.DocumentTemplate
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND template_type = ? AND is_default AND is_active", businessID, templateType).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// FindSystemDefault returns the platform-wide default for the type.
func (r *Repository) FindSystemDefault(ctx context.Context, templateType enums.TemplateType) (*models.DocumentTemplate, error) {
	var tmpl models.DocumentTemplate
	err := r.db.WithContext(ctx).
		Where("is_system AND template_type = ? AND is_default AND is_active", templateType).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// SetBusinessDefault flags one business template as the default, clearing
// any previous default for the same type.
func (r *Repository) SetBusinessDefault(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error {
	err := r.db.WithContext(ctx).
		Model(&models.DocumentTemplate{}).
		Where("business_id = ? AND template_type = ? AND is_default", businessID, templateType).
		UpdateColumn("is_default", false).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.DocumentTemplate{}).
		Where("id = ? AND business_id = ?", templateID, businessID).
		UpdateColumn("is_default", true).Error
}

// UpsertPreference records the explicit per-business template choice.
func (r *Repository) UpsertPreference(ctx context.Context, businessID, templateID uuid.UUID, templateType enums.TemplateType) error {
	pref := models.BusinessTemplatePreference{
		BusinessID:   businessID,
		TemplateType: templateType,
		TemplateID:   templateID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "template_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"template_id", "updated_at"}),
		}).
		Create(&pref).Error
}

// DeletePreference removes the explicit choice so resolution falls back to
// the default chain.
func (r *Repository) DeletePreference(ctx context.Context, businessID uuid.UUID, templateType enums.TemplateType) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND template_type = ?", businessID, templateType).
		Delete(&models.BusinessTemplatePreference{}).Error
}
