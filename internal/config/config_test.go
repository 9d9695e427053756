package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SALES_API_URL", "http://sales.local")
	t.Setenv("CATALOG_API_URL", "http://catalog.local")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "storefront_session", cfg.SessionCookie)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SALES_API_URL", "http://sales.local")
	// CATALOG_API_URL and SESSION_SECRET deliberately unset

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "2h0m0s", cfg.SessionTTL.String())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}
