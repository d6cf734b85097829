package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", MigrationVersion("001_init.sql"))
	assert.Equal(t, "002", MigrationVersion("/srv/migrations/002_add_index_on_name.sql"))
}

func TestSQLFiles_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestSQLFiles_MissingDirectory(t *testing.T) {
	_, err := SQLFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
