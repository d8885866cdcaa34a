package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("CORS_ORIGIN_SERVER", "https://hungrybaby.in, http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Test database configuration
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "host=db.internal port=5433 user=postgres password=postgres dbname=recipes sslmode=require", cfg.DSN())

	// Test CORS configuration
	assert.Equal(t, []string{"https://hungrybaby.in", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data/recipes.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	setTestEnv(t)
	secretsDir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_user"), []byte("reader\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("s3cret\n"), 0o600))
	t.Setenv("DB_USER", "ignored")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "reader", cfg.DBUser)
	assert.Equal(t, "s3cret", cfg.DBPassword)
}

func TestLoadConfigMissingPassword(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_USER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		DBDriver:   DriverSQLite,
		DBPath:     "data/recipes.db",
	}

	err := ValidateConfig(cfg, Production)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite is not allowed in production")
	assert.Contains(t, err.Error(), "CORS_ORIGIN_SERVER")

	assert.NoError(t, ValidateConfig(cfg, Development))
}

func TestValidateConfigUnknownDriver(t *testing.T) {
	err := ValidateConfig(&Config{ServerPort: "8080", DBDriver: "mysql"}, Development)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "mysql"`)
}

func TestValidateConfigOrigins(t *testing.T) {
	cfg := &Config{ServerPort: "8080", DBDriver: DriverSQLite, DBPath: "x.db"}

	cfg.CORSOrigins = []string{"https://hungrybaby.in", "*"}
	assert.NoError(t, ValidateConfig(cfg, Development))

	cfg.CORSOrigins = []string{"hungrybaby.in"}
	err := ValidateConfig(cfg, Development)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `origin "hungrybaby.in"`)
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, CI, ParseEnvironment("ci"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
