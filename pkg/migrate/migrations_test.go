package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MigracionesEmbebidas(t *testing.T) {
	require.NoError(t, Validate())
}

func TestCoreMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	for _, want := range []string{
		"current_stock NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (current_stock >= 0)",
		"token_hash  TEXT NOT NULL UNIQUE",
		"CHECK (discount_amount <= total)",
		"CHECK (type IN ('sale', 'loss', 'adjustment', 'inbound', 'outbound'))",
		"CREATE TABLE IF NOT EXISTS audit_logs",
	} {
		assert.True(t, strings.Contains(content, want), "falta %q", want)
	}
}

func TestValidateFS_RechazaArchivosMalFormados(t *testing.T) {
	bad := fstest.MapFS{
		"m/001_init.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, validateFS(bad, "m"))

	noDown := fstest.MapFS{
		"m/20260101000000_init.sql": &fstest.MapFile{Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	assert.Error(t, validateFS(noDown, "m"))

	dup := fstest.MapFS{
		"m/20260101000000_a.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": &fstest.MapFile{Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, validateFS(dup, "m"))
}
