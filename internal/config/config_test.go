package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"REGFORM_ENV", "REGFORM_ADDR", "REGFORM_LOG_LEVEL", "REGFORM_LAYOUT",
		"REGFORM_ALLOWED_ORIGINS", "REGFORM_SHUTDOWN_GRACE_SECONDS", "REGFORM_MAX_BODY_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.Production())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownGrace())
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REGFORM_ENV", "production")
	t.Setenv("REGFORM_ADDR", "127.0.0.1:9000")
	t.Setenv("REGFORM_LOG_LEVEL", "debug")
	t.Setenv("REGFORM_LAYOUT", "layouts/custom.yaml")
	t.Setenv("REGFORM_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REGFORM_SHUTDOWN_GRACE_SECONDS", "3")
	t.Setenv("REGFORM_MAX_BODY_BYTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.Production())
	assert.Equal(t, "layouts/custom.yaml", cfg.App.Layout)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownGrace())
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "production", cfg.Logger.Env)
}

func TestLoad_RejectsNegativeGrace(t *testing.T) {
	t.Setenv("REGFORM_SHUTDOWN_GRACE_SECONDS", "-1")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_IgnoresMalformedInts(t *testing.T) {
	t.Setenv("REGFORM_SHUTDOWN_GRACE_SECONDS", "soon")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.HTTP.ShutdownGraceSeconds)
}
