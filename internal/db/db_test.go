package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josm18/EPL-2024-2025/internal/config"
)

func TestStatements(t *testing.T) {
	for _, name := range []string{"health_check", "player_season_stats", "check_player_stats_season"} {
		sql, ok := Statements[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, sql)
	}
	assert.Contains(t, Statements["player_season_stats"], "$1")
	assert.Contains(t, Statements["player_season_stats"], "$2")
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), &config.Config{DatabaseURL: "://not a url"})
	assert.Error(t, err)
}

func TestPool_HealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := New(ctx, &config.Config{
		DatabaseURL:    url,
		DBPoolMinConns: 1,
		DBPoolMaxConns: 2,
		DBPoolMaxLife:  time.Minute,
	})
	require.NoError(t, err)
	defer pool.Close()

	assert.NoError(t, pool.HealthCheck(ctx))
	_, err = pool.HasSeason(ctx, config.CurrentSeason.Year, config.CurrentSeason.LeagueID)
	assert.NoError(t, err)
}
