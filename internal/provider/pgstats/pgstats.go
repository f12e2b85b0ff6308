// Package pgstats reads player season stats from Postgres. Each row carries
// the player's identity plus a JSONB object of snake_case stat keys, which
// are mapped back onto the season CSV column names.
package pgstats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
	"github.com/josm18/EPL-2024-2025/internal/provider"
)

// StatementName is the prepared statement registered by the db package.
const StatementName = "player_season_stats"

// Querier is satisfied by *pgxpool.Pool and *db.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Load fetches every player row for a season and league.
func Load(ctx context.Context, q Querier, season, leagueID int) (*metrics.Table, error) {
	rows, err := LoadRows(ctx, q, season, leagueID)
	if err != nil {
		return nil, err
	}
	return provider.ToTable(rows, ColumnOrder(rows)), nil
}

// LoadRows fetches canonical rows without building a table.
func LoadRows(ctx context.Context, q Querier, season, leagueID int) ([]provider.Row, error) {
	pgRows, err := q.Query(ctx, StatementName, season, leagueID)
	if err != nil {
		return nil, fmt.Errorf("query player stats: %w", err)
	}
	defer pgRows.Close()

	var out []provider.Row
	for pgRows.Next() {
		var (
			name     string
			club     *string
			position *string
			stats    []byte
		)
		if err := pgRows.Scan(&name, &club, &position, &stats); err != nil {
			return nil, fmt.Errorf("scan player stats: %w", err)
		}
		row, err := DecodeRow(name, deref(club), deref(position), stats)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", name, err)
		}
		out = append(out, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player stats: %w", err)
	}
	return out, nil
}

// DecodeRow builds a canonical row from identity fields and a JSONB stats
// object. Stat keys are mapped with provider.ColumnForStatKey.
func DecodeRow(name, club, position string, stats []byte) (provider.Row, error) {
	row := provider.Row{Name: name, Club: club, Position: position, Fields: map[string]interface{}{}}
	if len(bytes.TrimSpace(stats)) == 0 {
		return row, nil
	}

	dec := json.NewDecoder(bytes.NewReader(stats))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return provider.Row{}, fmt.Errorf("decode stats: %w", err)
	}
	for k, v := range raw {
		row.Fields[provider.ColumnForStatKey(k)] = v
	}
	return row, nil
}

// ColumnOrder lists the known raw columns present in rows in season CSV
// order. Unknown columns are left for ToTable to append.
func ColumnOrder(rows []provider.Row) []string {
	present := map[string]bool{}
	for _, r := range rows {
		for c := range r.Fields {
			present[c] = true
		}
	}
	var order []string
	for _, c := range metrics.RawColumns {
		if present[c] {
			order = append(order, c)
		}
	}
	return order
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
