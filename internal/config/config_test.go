package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const baseConfig = `
server:
  host: "127.0.0.1"
  port: 8080
database:
  type: "postgres"
  host: "localhost"
  port: 5432
  user: "app"
  password: "secret"
  database: "appdb"
auth:
  mode: "local"
  jwt_secret: "0123456789abcdef0123456789abcdef"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=appdb")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "sslmode=disable")

	// Defaults applied when omitted.
	assert.Equal(t, "opportunities", cfg.Search.IndexName)
	assert.Equal(t, "gemini-2.5-flash", cfg.Moderation.Model)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ALGOLIA_APP_ID", "ENVAPP")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "ENVAPP", cfg.Search.AppID)
	assert.Equal(t, "env-gemini-key", cfg.Moderation.GeminiAPIKey)
}

func TestValidate(t *testing.T) {
	t.Run("UnsupportedDatabaseType", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Port = 8080
		cfg.Database.Type = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("FirestoreNeedsProjectOrKey", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Port = 8080
		cfg.Database.Type = "firestore"
		cfg.Auth.Mode = "firebase"
		assert.Error(t, cfg.Validate())

		cfg.Firebase.ProjectID = "my-project"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("LocalAuthNeedsLongSecret", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Port = 8080
		cfg.Database.Type = "firestore"
		cfg.Firebase.ProjectID = "my-project"
		cfg.Auth.Mode = "local"
		cfg.Auth.JWTSecret = "short"
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.Validate())
	})
}
