// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking. Postgres is an optional, read-only
// source of player season stats.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josm18/EPL-2024-2025/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Statements is the set of named statements prepared on every connection.
var Statements = map[string]string{
	"health_check": "SELECT 1",

	// Season stats: identity plus the JSONB stats object for each player.
	"player_season_stats": `SELECT p.name, t.name, p.position, ps.stats
		FROM ` + config.PlayerStatsTable + ` ps
		JOIN ` + config.PlayersTable + ` p ON p.id = ps.player_id AND p.sport = ps.sport
		LEFT JOIN ` + config.TeamsTable + ` t ON t.id = ps.team_id AND t.sport = ps.sport
		WHERE ps.sport = 'FOOTBALL' AND ps.season = $1 AND ps.league_id = $2
		ORDER BY p.name`,

	// Season availability check before a load.
	"check_player_stats_season": "SELECT 1 FROM " + config.PlayerStatsTable +
		" WHERE sport = 'FOOTBALL' AND season = $1 AND league_id = $2 LIMIT 1",
}

// HasSeason reports whether any player stats exist for the season.
func (p *Pool) HasSeason(ctx context.Context, season, leagueID int) (bool, error) {
	var n int
	err := p.QueryRow(ctx, "check_player_stats_season", season, leagueID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check season: %w", err)
	}
	return true, nil
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
