package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/get-hunter/hero365-app-sub002/pkg/migrate"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestValidateDirCollectsAllProblems(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	writeFile("badname.sql", "-- +goose Up\n-- +goose Down\n")
	writeFile("20240101000000_missing_down.sql", "-- +goose Up\nSELECT 1;\n")
	writeFile("20240102000000_ok.sql", "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")

	err := migrate.ValidateDir(dir)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2, "expected 2 problems: %v", errs)

	var gotName, gotDown bool
	for _, e := range errs {
		if strings.Contains(e.Error(), "invalid migration filename") {
			gotName = true
		}
		if strings.Contains(e.Error(), "+goose Down") {
			gotDown = true
		}
	}
	assert.True(t, gotName, "missing filename problem in %v", errs)
	assert.True(t, gotDown, "missing down-section problem in %v", errs)
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n"
	for _, name := range []string{"20240101000000_first.sql", "20240101000000_second.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	err := migrate.ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")
}
