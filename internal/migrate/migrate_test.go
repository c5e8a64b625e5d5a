package migrate_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/migrations"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		content, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- +goose Up", name)
		assert.Contains(t, string(content), "-- +goose Down", name)
	}
}

func TestInitMigration_RefreshDigestNullable(t *testing.T) {
	content, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)

	for _, line := range strings.Split(string(content), "\n") {
		if strings.Contains(line, "refresh_token_hash") {
			assert.NotContains(t, line, "NOT NULL")
			return
		}
	}
	t.Fatal("refresh_token_hash column not found")
}
