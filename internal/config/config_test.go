package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"EPL_DATA_PATH", "DATABASE_URL", "API_PORT", "PORT", "LOG_LEVEL", "CORS_ALLOW_ORIGINS", "DEFAULT_MIN_MINUTES", "RATE_LIMIT_WINDOW", "CACHE_TTL_MINUTES", "ENVIRONMENT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/epl_player_stats_24_25.csv", cfg.DataPath)
	assert.Equal(t, CurrentSeason.Year, cfg.Season)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.UsesDatabase())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/epl")
	t.Setenv("PORT", "9090")
	t.Setenv("API_PORT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("DEFAULT_MIN_MINUTES", "450")
	t.Setenv("RELOAD_ON_NOTIFY", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 450.0, cfg.DefaultMinMinutes)
	assert.False(t, cfg.ReloadOnNotify)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("API_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("API_PORT", "8000")
	t.Setenv("DEFAULT_MIN_MINUTES", "-1")
	_, err = Load()
	assert.Error(t, err)
}

func TestClubColor(t *testing.T) {
	c, ok := ClubColor("Arsenal")
	assert.True(t, ok)
	assert.Equal(t, "#EF0107", c)

	c, ok = ClubColor("Sunderland")
	assert.False(t, ok)
	assert.Equal(t, DefaultClubColor, c)

	assert.Len(t, Clubs(), 20)
	assert.Equal(t, "Arsenal", Clubs()[0])

	colors := ClubColors()
	colors["Arsenal"] = "#000000"
	c, _ = ClubColor("Arsenal")
	assert.Equal(t, "#EF0107", c)
}
