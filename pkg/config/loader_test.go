package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/config"
)

// Tests in this file touch the process environment and the shared cache, so
// they do not run in parallel.

type relayConfig struct {
	Host    string   `env:"CFGTEST_RELAY_HOST" envDefault:"localhost"`
	Port    int      `env:"CFGTEST_RELAY_PORT" envDefault:"25"`
	TLS     bool     `env:"CFGTEST_RELAY_TLS"`
	Domains []string `env:"CFGTEST_RELAY_DOMAINS" envSeparator:","`
}

type requiredConfig struct {
	Token string `env:"CFGTEST_TOKEN,required"`
}

type cachedConfig struct {
	Value string `env:"CFGTEST_CACHED"`
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_RELAY_HOST", "mail.example.com")
	t.Setenv("CFGTEST_RELAY_DOMAINS", "a.example.com,b.example.com")

	var cfg relayConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "mail.example.com", cfg.Host)
	assert.Equal(t, 25, cfg.Port)
	assert.False(t, cfg.TLS)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.Domains)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()

	var missing requiredConfig
	assert.ErrorIs(t, config.Load(&missing), config.ErrParsingConfig)

	var nilCfg *relayConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)

	assert.Panics(t, func() { config.MustLoad(&missing) })
}

func TestLoad_CachedPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFGTEST_CACHED", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)

	var reloaded cachedConfig
	require.NoError(t, config.Reload(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_RELAY_HOST", "from-process")
	t.Setenv("CFGTEST_RELAY_PORT", "")

	base := writeEnv(t, "CFGTEST_RELAY_HOST=base.example.com\nCFGTEST_RELAY_PORT=2525\n")
	override := writeEnv(t, "CFGTEST_RELAY_HOST=\"override.example.com\"\n")

	require.NoError(t, config.LoadEnv(base, override))

	var cfg relayConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "override.example.com", cfg.Host)
	assert.Equal(t, 2525, cfg.Port)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrEnvFile)
}

func TestApp_Defaults(t *testing.T) {
	config.ResetCache()
	for _, key := range []string{"APP_ENV", "SERVICE_NAME", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	var app config.App
	require.NoError(t, config.Load(&app))
	assert.Equal(t, "development", app.Env)
	assert.Equal(t, "attendance-report", app.ServiceName)
	assert.Empty(t, app.LogLevel)
}
