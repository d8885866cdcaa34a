package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hungrybaby/recipes-api/backend/config"
	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "nested", "recipes.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.NoError(t, HealthCheck(context.Background(), db))
	assert.FileExists(t, cfg.DBPath)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := OpenSQLite("file::memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, RunMigrations(db, "does-not-matter"))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "table for %T", m)
	}

	name, err := RollbackLastMigration(db, "does-not-matter")
	require.NoError(t, err)
	assert.Equal(t, "automigrate", name)
	assert.False(t, db.Migrator().HasTable(&models.Recipe{}))
}

func TestMigrationFilesSkipsRollbacks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_add_index.sql",
		"000001_create_recipes.sql",
		"000001_create_recipes_rollback.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_recipes.sql", "000002_add_index.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
