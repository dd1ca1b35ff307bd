package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFrom_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
APP_PORT: "3000"
APP_TIMEZONE: Asia/Jakarta
DB_HOST: localhost
NOTIFICATIONS_ENABLED: true
DISPATCH_INTERVAL: 30s
RECIPE_API_KEY: secret
`)

	require.NoError(t, LoadConfigFrom(path))

	assert.Equal(t, "3000", GetConfig("APP_PORT"))
	assert.Equal(t, "localhost", GetConfig("DB_HOST"))
	assert.Equal(t, "secret", GetConfig("RECIPE_API_KEY"))
	assert.Equal(t, "true", GetConfig("NOTIFICATIONS_ENABLED"))
	assert.True(t, NotificationsEnabled())
	assert.Equal(t, 30*time.Second, DispatchInterval())
	assert.Equal(t, "Asia/Jakarta", Location().String())
}

func TestLoadConfigFrom_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "DB_HOST: yaml-host\nNOTIFICATIONS_ENABLED: false\n")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("NOTIFICATIONS_ENABLED", "true")

	require.NoError(t, LoadConfigFrom(path))

	assert.Equal(t, "env-host", GetConfig("DB_HOST"))
	assert.True(t, NotificationsEnabled())
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	require.NoError(t, LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml")))

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "https://world.openfoodfacts.org", GetConfig("PRODUCT_API_URL"))
	assert.Equal(t, "https://api.spoonacular.com", GetConfig("RECIPE_API_URL"))
	assert.Equal(t, time.Minute, DispatchInterval())
	assert.Equal(t, time.Local, Location())
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfigFrom_BadYAML(t *testing.T) {
	path := writeConfig(t, "APP_PORT: [unterminated\n")

	assert.Error(t, LoadConfigFrom(path))
}
