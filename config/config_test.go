package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2002, cfg.StartYear)
	assert.Equal(t, 2025, cfg.EndYear)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.True(t, cfg.WriteXLSX)
	assert.True(t, cfg.RenderCharts)
	assert.False(t, cfg.PDFReport)
	assert.False(t, cfg.PostgresEnabled)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 0, cfg.BatchRateLimitMs)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("START_YEAR", "2010")
	t.Setenv("END_YEAR", "2030")
	t.Setenv("SEED", "7")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("BATCH_RATE_LIMIT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2010, cfg.StartYear)
	assert.Equal(t, 2030, cfg.EndYear)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.PostgresEnabled)
	assert.Contains(t, cfg.DSN(), "host=db ")
	assert.Equal(t, 250, cfg.BatchRateLimitMs)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"end before start", "END_YEAR", "2001"},
		{"start too early", "START_YEAR", "1999"},
		{"zero workers", "MAX_CONCURRENCY", "0"},
		{"negative rate limit", "BATCH_RATE_LIMIT_MS", "-1"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"not a number", "SEED", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	c := &Config{
		PostgresHost: "h", PostgresPort: "1", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", c.DSN())
}
