package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fraud-desk", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "admin", cfg.Auth.OperatorUsername)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, "https://api.frankfurter.app/currencies", cfg.Currency.URL)
	assert.Equal(t, 6*time.Hour, cfg.Currency.RefreshInterval())
	assert.Equal(t, 5.0, cfg.Intake.PerMinute)
	assert.Equal(t, 10.0, cfg.Auth.LoginPerMinute)
	assert.Empty(t, cfg.Store.BaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD_HASH", "$2a$12$hash")
	t.Setenv("STORE_BASE_URL", "https://store.example.com/api/")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "15")
	t.Setenv("INTAKE_SUBMISSIONS_PER_MINUTE", "0.5")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://store.example.com/api", cfg.Store.BaseURL)
	assert.Equal(t, 15*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, 0.5, cfg.Intake.PerMinute)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoadRequiresOperatorCredential(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD", "")
	t.Setenv("OPERATOR_PASSWORD_HASH", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("OPERATOR_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	require.Error(t, err)
}
