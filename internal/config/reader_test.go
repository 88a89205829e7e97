package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvReaderDefaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, ".taskswift", cfg.Storage.Dir)
	assert.Equal(t, "en", cfg.Query.CollationLanguage)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Empty(t, cfg.JWT.SigningKey)
}

func TestEnvReaderRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "redis")

	_, err := NewEnvReader().Read()
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestEnvReaderPostgresNeedsConnection(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("STORAGE_BACKEND", BackendPostgres)

	_, err := NewEnvReader().Read()
	assert.ErrorIs(t, err, ErrPostgresNotConfigured)

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USERNAME", "todo")
	t.Setenv("POSTGRES_DATABASE", "todo")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, 10*time.Second, cfg.Postgres.ConnectTimeout)
}

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: dev
storage:
  backend: sqlite
  sqlite_path: /var/lib/taskswift/tasks.db
query:
  collation_language: de
http:
  port: "9090"
jwt:
  signing_key: secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFileReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/taskswift/tasks.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "de", cfg.Query.CollationLanguage)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "secret", cfg.JWT.SigningKey)
}

func TestFileReaderEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: dev\nhttp:\n  port: \"9090\"\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := NewFileReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTP.Port)
}

func TestFileReaderMissingFile(t *testing.T) {
	_, err := NewFileReader(filepath.Join(t.TempDir(), "absent.yaml")).Read()
	assert.Error(t, err)
}
