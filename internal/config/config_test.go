package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Second, cfg.SignInLatency)
	assert.Equal(t, 2.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Empty(t, cfg.OpsAddr)
	assert.Error(t, cfg.RequireTelegram())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ENV", "production")
	t.Setenv("SIGNIN_LATENCY", "250ms")
	t.Setenv("OPS_ADDR", ":9090")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_BURST", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 250*time.Millisecond, cfg.SignInLatency)
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestRejectsBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT", "0")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT", "1")
	t.Setenv("SIGNIN_LATENCY", "-1s")
	_, err = FromEnv()
	assert.Error(t, err)
}
