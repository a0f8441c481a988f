package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "localhost"
port = 5432
user = "rental"
password = "secret"
dbname = "rentals"

[logs]
level = "debug"

[redis]
enabled = true
addr = "localhost:6379"

[cors]
allowed_origins = ["http://localhost:5173"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "rental-service:changes", cfg.Redis.Channel)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "0 */15 * * * *", cfg.Jobs.ReconcileSchedule)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=localhost port=5432 user=rental password=secret dbname=rentals sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{HTTPPort: 8080},
		Database: DatabaseConfig{Host: "localhost", DBName: "rentals"},
		Email:    EmailConfig{Enabled: true},
		Storage:  StorageConfig{Enabled: true, Bucket: "proofs"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.api_key")
	assert.Contains(t, err.Error(), "storage.bucket")

	cfg.Email.Enabled = false
	cfg.Storage.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
