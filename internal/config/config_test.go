package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "voltra", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, 30*time.Minute, cfg.AuthTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.SimulationTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("AUTH_TOKEN_TTL", "15m")
	t.Setenv("DATABASE_MAX_OPEN_CONN", "50")
	t.Setenv("SIMULATION_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 15*time.Minute, cfg.AuthTokenTTL)
	assert.Equal(t, 50, cfg.DBMaxOpenConn)
	assert.Equal(t, 5*time.Second, cfg.SimulationTimeout, "malformed duration falls back to the default")
}

func TestParseFeedWindows(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yml")
	require.NoError(t, v.ReadConfig(strings.NewReader("feeds:\n  consumptionLag: 3h\n  smpLag: 6h\n")))

	cfg := parseFeedWindows(v)
	assert.Equal(t, 3*time.Hour, cfg.ConsumptionLag)
	assert.Equal(t, 6*time.Hour, cfg.SMPLag)
}

func TestParseFeedWindowsFallsBackToDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yml")
	require.NoError(t, v.ReadConfig(strings.NewReader("feeds:\n  consumptionLag: 0s\n")))

	cfg := parseFeedWindows(v)
	assert.Equal(t, 2*time.Hour, cfg.ConsumptionLag)
	assert.Equal(t, 4*time.Hour, cfg.SMPLag)
}

func TestFeedWindowHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  consumptionLag: 1h\n"), 0o600))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	holder, err := NewFeedWindowHolder()
	require.NoError(t, err)

	cfg := holder.Current()
	assert.Equal(t, time.Hour, cfg.ConsumptionLag)
	assert.Equal(t, 4*time.Hour, cfg.SMPLag)
}
