package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	config, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", config.Addr())
	assert.Equal(t, DriverSqlite, config.Database.Driver)
	assert.Equal(t, "annotator.sqlite", config.Database.DSN)
	assert.Equal(t, "media", config.Media.Root)
	assert.Equal(t, "https://myapp.com/share", config.Share.BaseURL)
	assert.Equal(t, 5*time.Second, config.Server.ShutdownTimeout)
}

func TestNewConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9090"
  write_timeout: 30s
database:
  driver: postgres
  dsn: host=localhost dbname=annotator
media:
  root: /var/lib/annotator
`)
	config, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", config.Addr())
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, DriverPostgres, config.Database.Driver)
	assert.Equal(t, "/var/lib/annotator", config.Media.Root)
	// untouched keys keep their defaults
	assert.Equal(t, 5*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "https://myapp.com/share", config.Share.BaseURL)
}

func TestNewConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")
	t.Setenv("ANNOTATOR_PORT", "7070")
	t.Setenv("ANNOTATOR_MEDIA_ROOT", "/tmp/media")
	t.Setenv("ANNOTATOR_DEBUG", "true")

	config, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, "/tmp/media", config.Media.Root)
	assert.True(t, config.Server.Debug)
}

func TestNewConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown driver", content: "database:\n  driver: oracle\n"},
		{name: "non numeric port", content: "server:\n  port: http\n"},
		{name: "share url", content: "share:\n  base_url: not a url\n"},
		{name: "broken yaml", content: "server: [\n"},
		{name: "debug flag", env: map[string]string{"ANNOTATOR_DEBUG": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			path := writeConfig(t, tt.content)
			_, err := NewConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	assert.Error(t, ValidateConfigPath(t.TempDir()))
	assert.Error(t, ValidateConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.NoError(t, ValidateConfigPath(writeConfig(t, "")))
}
