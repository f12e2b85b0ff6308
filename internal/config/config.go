// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/statsctl.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Season registry
// --------------------------------------------------------------------------

type SeasonConfig struct {
	ID       string
	Name     string
	Year     int // start year, e.g. 2024 for 2024/25
	LeagueID int
}

// CurrentSeason is the season the dashboard is built for.
var CurrentSeason = SeasonConfig{
	ID:       "EPL-2024-25",
	Name:     "Premier League 2024/25",
	Year:     2024,
	LeagueID: 8,
}

// --------------------------------------------------------------------------
// Table names: used by the optional Postgres source
// --------------------------------------------------------------------------

const (
	PlayersTable     = "players"
	PlayerStatsTable = "player_stats"
	TeamsTable       = "teams"
)

// --------------------------------------------------------------------------
// Config struct: populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Source data
	DataPath string
	Season   int
	LeagueID int

	// Database (optional read-only source)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration
	ReloadOnNotify bool // reload the table on player_stats_updated

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration

	// Dashboard defaults
	DefaultMinMinutes float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DataPath: envOr("EPL_DATA_PATH", "data/epl_player_stats_24_25.csv"),
		Season:   envInt("DATA_SEASON", CurrentSeason.Year),
		LeagueID: envInt("DATA_LEAGUE_ID", CurrentSeason.LeagueID),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		ReloadOnNotify: envBool("RELOAD_ON_NOTIFY", true),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8501",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		DefaultMinMinutes: envFloat("DEFAULT_MIN_MINUTES", 0),
	}

	if cfg.DatabaseURL == "" && cfg.DataPath == "" {
		return nil, fmt.Errorf("EPL_DATA_PATH or DATABASE_URL must be set")
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return nil, fmt.Errorf("invalid API_PORT %d", cfg.APIPort)
	}
	if cfg.DefaultMinMinutes < 0 {
		return nil, fmt.Errorf("DEFAULT_MIN_MINUTES must not be negative")
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDatabase reports whether stats are read from Postgres instead of the CSV.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
