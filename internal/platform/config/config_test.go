package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "HTTP_PORT", "REDIS_DB", "DAILY_CLAIM_LIMIT",
		"FORM_CACHE_TTL", "WORKER_POLL_INTERVAL", "LOG_FORMAT", "AUTO_MIGRATE",
		"ENABLE_TASK_OUTBOX_RELAY", "ENABLE_SURVEY_OUTBOX_RELAY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "taskhall", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10, cfg.DailyClaimLimit)
	assert.Equal(t, 5*time.Minute, cfg.FormCacheTTL)
	assert.Equal(t, 2*time.Second, cfg.WorkerPollInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.EnableTaskOutboxRelay)
	assert.True(t, cfg.EnableSurveyOutboxRelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DAILY_CLAIM_LIMIT", "3")
	t.Setenv("FORM_CACHE_TTL", "30s")
	t.Setenv("AUTO_MIGRATE", "yes")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("ENABLE_SURVEY_OUTBOX_RELAY", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 3, cfg.DailyClaimLimit)
	assert.Equal(t, 30*time.Second, cfg.FormCacheTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.EnableSurveyOutboxRelay)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("DAILY_CLAIM_LIMIT", "ten")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DAILY_CLAIM_LIMIT", "")
	t.Setenv("FORM_CACHE_TTL", "-1m")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("FORM_CACHE_TTL", "")
	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load()
	require.Error(t, err)
}
