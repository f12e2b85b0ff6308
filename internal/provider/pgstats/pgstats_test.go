package pgstats

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/db"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
	"github.com/josm18/EPL-2024-2025/internal/provider"
)

func TestDecodeRow(t *testing.T) {
	row, err := DecodeRow("Bukayo Saka", "Arsenal", "MID", []byte(`{
		"goals": 6, "assists": 10, "minutes_played": 1730,
		"shots_on_target": 18, "passes_pct": "78.4", "xg_chain": 9.1
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Bukayo Saka", row.Name)
	v, ok := provider.ExtractValue(row.Fields[metrics.ColMinutes])
	require.True(t, ok)
	assert.Equal(t, 1730.0, v)
	v, _ = provider.ExtractValue(row.Fields[metrics.ColPassesPct])
	assert.Equal(t, 78.4, v)
	_, ok = row.Fields["xg_chain"]
	assert.True(t, ok, "unknown keys pass through")
}

func TestDecodeRow_EmptyAndInvalid(t *testing.T) {
	row, err := DecodeRow("A", "Arsenal", "FWD", nil)
	require.NoError(t, err)
	assert.Empty(t, row.Fields)

	_, err = DecodeRow("A", "Arsenal", "FWD", []byte(`{"goals":`))
	assert.Error(t, err)
}

func TestColumnOrder(t *testing.T) {
	rows := []provider.Row{
		{Fields: map[string]interface{}{metrics.ColGoals: 1, "xg_chain": 2}},
		{Fields: map[string]interface{}{metrics.ColMinutes: 90}},
	}
	assert.Equal(t, []string{metrics.ColMinutes, metrics.ColGoals}, ColumnOrder(rows))

	tbl := provider.ToTable(rows, ColumnOrder(rows))
	assert.Equal(t, []string{metrics.ColMinutes, metrics.ColGoals, "xg_chain"}, tbl.Columns())
}

func TestLoad_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.New(ctx, &config.Config{
		DatabaseURL:    url,
		DBPoolMinConns: 1,
		DBPoolMaxConns: 2,
		DBPoolMaxLife:  time.Minute,
	})
	require.NoError(t, err)
	defer pool.Close()

	tbl, err := Load(ctx, pool, config.CurrentSeason.Year, config.CurrentSeason.LeagueID)
	require.NoError(t, err)
	for _, r := range tbl.Rows() {
		assert.NotEmpty(t, r.Name)
	}
}
