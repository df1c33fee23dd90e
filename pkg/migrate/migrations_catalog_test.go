package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCatalogMigrationDefinesBusinessServiceSlugs(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_service_catalog.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no service catalog migration file found")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS business_services",
		"slug TEXT NOT NULL",
		"CONSTRAINT uq_business_services_slug UNIQUE (business_id, slug)",
		"CONSTRAINT uq_business_services_name UNIQUE (business_id, name)",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestBackfillMigrationCoversBusinessServiceSlugs(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_backfill_phone_and_slugs.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no backfill migration file found")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"FROM business_services WHERE slug IS NULL OR slug = ''",
		"WHERE business_id = r.business_id AND slug = candidate AND id <> r.id",
		"UPDATE business_services SET slug = candidate WHERE id = r.id",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}
