package templates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/get-hunter/hero365-app-sub002/pkg/db/models"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
)

func setupTemplatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	templates := `
CREATE TABLE IF NOT EXISTS document_templates (
  id TEXT PRIMARY KEY,
  business_id TEXT,
  template_type TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  is_system INTEGER NOT NULL DEFAULT 0,
  is_default INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  branding TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	preferences := `
CREATE TABLE IF NOT EXISTS business_template_preferences (
  id TEXT,
  business_id TEXT NOT NULL,
  template_type TEXT NOT NULL,
  template_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (business_id, template_type)
);`
	require.NoError(t, db.Exec(templates).Error)
	require.NoError(t, db.Exec(preferences).Error)
	return db
}

func seedTemplate(t *testing.T, db *gorm.DB, businessID *uuid.UUID, tt enums.TemplateType, name string, isSystem, isDefault bool) *models.DocumentTemplate {
	t.Helper()

	tmpl := &models.DocumentTemplate{
		ID:           uuid.New(),
		BusinessID:   businessID,
		TemplateType: tt,
		Name:         name,
		IsSystem:     isSystem,
		IsDefault:    isDefault,
		IsActive:     true,
	}
	require.NoError(t, db.Create(tmpl).Error)
	return tmpl
}

func TestRepoResolutionTiers(t *testing.T) {
	db := setupTemplatesTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	system := seedTemplate(t, db, nil, enums.TemplateTypeEstimate, "Classic Estimate", true, true)
	custom := seedTemplate(t, db, &businessID, enums.TemplateTypeEstimate, "Shop Estimate", false, true)

	_, err := repo.FindPreferred(ctx, businessID, enums.TemplateTypeEstimate)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindBusinessDefault(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, custom.ID, got.ID)

	got, err = repo.FindSystemDefault(ctx, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, system.ID, got.ID)

	require.NoError(t, repo.UpsertPreference(ctx, businessID, system.ID, enums.TemplateTypeEstimate))
	got, err = repo.FindPreferred(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, system.ID, got.ID)
}

func TestRepoUpsertPreferenceReplacesChoice(t *testing.T) {
	db := setupTemplatesTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	first := seedTemplate(t, db, &businessID, enums.TemplateTypeInvoice, "Invoice A", false, false)
	second := seedTemplate(t, db, &businessID, enums.TemplateTypeInvoice, "Invoice B", false, false)

	require.NoError(t, repo.UpsertPreference(ctx, businessID, first.ID, enums.TemplateTypeInvoice))
	require.NoError(t, repo.UpsertPreference(ctx, businessID, second.ID, enums.TemplateTypeInvoice))

	got, err := repo.FindPreferred(ctx, businessID, enums.TemplateTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	require.NoError(t, repo.DeletePreference(ctx, businessID, enums.TemplateTypeInvoice))
	_, err = repo.FindPreferred(ctx, businessID, enums.TemplateTypeInvoice)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoPreferredSkipsInactiveTemplate(t *testing.T) {
	db := setupTemplatesTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	retired := seedTemplate(t, db, &businessID, enums.TemplateTypeEstimate, "Retired", false, false)
	require.NoError(t, repo.UpsertPreference(ctx, businessID, retired.ID, enums.TemplateTypeEstimate))
	require.NoError(t, db.Model(&models.DocumentTemplate{}).Where("id = ?", retired.ID).UpdateColumn("is_active", false).Error)

	_, err := repo.FindPreferred(ctx, businessID, enums.TemplateTypeEstimate)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoSetBusinessDefaultClearsPrevious(t *testing.T) {
	db := setupTemplatesTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	ctx := context.Background()

	old := seedTemplate(t, db, &businessID, enums.TemplateTypeEstimate, "Old Default", false, true)
	next := seedTemplate(t, db, &businessID, enums.TemplateTypeEstimate, "New Default", false, false)

	require.NoError(t, repo.SetBusinessDefault(ctx, businessID, next.ID, enums.TemplateTypeEstimate))

	got, err := repo.FindBusinessDefault(ctx, businessID, enums.TemplateTypeEstimate)
	require.NoError(t, err)
	assert.Equal(t, next.ID, got.ID)

	var previous models.DocumentTemplate
	require.NoError(t, db.First(&previous, "id = ?", old.ID).Error)
	assert.False(t, previous.IsDefault, "previous default should be cleared")
}

func TestRepoListForBusinessIncludesSystemTemplates(t *testing.T) {
	db := setupTemplatesTestDB(t)
	repo := NewRepository(db)
	businessID := uuid.New()
	otherBusiness := uuid.New()
	ctx := context.Background()

	system := seedTemplate(t, db, nil, enums.TemplateTypeInvoice, "Classic Invoice", true, true)
	mine := seedTemplate(t, db, &businessID, enums.TemplateTypeInvoice, "Branded Invoice", false, false)
	seedTemplate(t, db, &otherBusiness, enums.TemplateTypeInvoice, "Foreign Invoice", false, false)

	rows, err := repo.ListForBusiness(ctx, businessID, enums.TemplateTypeInvoice)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ids := []uuid.UUID{rows[0].ID, rows[1].ID}
	assert.Contains(t, ids, system.ID)
	assert.Contains(t, ids, mine.ID)
}
