package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/db"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
	"github.com/josm18/EPL-2024-2025/internal/provider/csvfile"
	"github.com/josm18/EPL-2024-2025/internal/provider/pgstats"
)

var (
	// ErrNoSource is returned when neither a CSV path nor a database is configured.
	ErrNoSource = errors.New("no stats source configured")
	// ErrNoSeason is returned when the database has no stats for the season.
	ErrNoSeason = errors.New("no player stats for season")
)

// Source yields a raw season table.
type Source interface {
	Name() string
	Load(ctx context.Context) (*metrics.Table, error)
}

// CSVSource reads the season CSV from disk.
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string { return "csv:" + s.Path }

func (s CSVSource) Load(_ context.Context) (*metrics.Table, error) {
	return csvfile.LoadFile(s.Path)
}

// SeasonQuerier is the database surface PostgresSource needs. *db.Pool
// satisfies it.
type SeasonQuerier interface {
	pgstats.Querier
	HasSeason(ctx context.Context, season, leagueID int) (bool, error)
}

// PostgresSource reads player season stats through the prepared statement
// registered by the db package.
type PostgresSource struct {
	Querier  SeasonQuerier
	Season   int
	LeagueID int
}

func (s PostgresSource) Name() string {
	return fmt.Sprintf("postgres:season=%d,league=%d", s.Season, s.LeagueID)
}

func (s PostgresSource) Load(ctx context.Context) (*metrics.Table, error) {
	ok, err := s.Querier.HasSeason(ctx, s.Season, s.LeagueID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("season %d league %d: %w", s.Season, s.LeagueID, ErrNoSeason)
	}
	return pgstats.Load(ctx, s.Querier, s.Season, s.LeagueID)
}

// SourceFromConfig picks Postgres when DATABASE_URL is set and the CSV file
// otherwise. The returned close func releases the pool and is never nil.
func SourceFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Source, *db.Pool, func(), error) {
	if cfg.UsesDatabase() {
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, func() {}, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("Using Postgres stats source", "season", cfg.Season, "league_id", cfg.LeagueID)
		src := PostgresSource{Querier: pool, Season: cfg.Season, LeagueID: cfg.LeagueID}
		return src, pool, pool.Close, nil
	}
	if cfg.DataPath == "" {
		return nil, nil, func() {}, ErrNoSource
	}
	logger.Info("Using CSV stats source", "path", cfg.DataPath)
	return CSVSource{Path: cfg.DataPath}, nil, func() {}, nil
}

// Load reads the raw table from src, records data-quality warnings and
// returns the enriched table.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*metrics.Table, LoadResult, error) {
	result := LoadResult{Source: src.Name()}
	start := time.Now()

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, result, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	Check(raw, &result)
	enriched := metrics.ComputeMetrics(raw)

	result.Rows = enriched.Len()
	result.Columns = len(enriched.Columns())
	result.TextColumns = len(enriched.TextColumns())
	result.Clubs = len(enriched.Distinct(metrics.ColClub))
	result.Duration = time.Since(start)

	logger.Info("Season stats loaded", "summary", result.Summary(),
		"duration", result.Duration.Round(time.Millisecond))
	for _, w := range result.Warnings {
		logger.Warn("dataset warning", "warning", w)
	}
	return enriched, result, nil
}

// Check records non-fatal data problems: missing raw columns, blank names,
// unregistered clubs and duplicate player rows.
func Check(t *metrics.Table, result *LoadResult) {
	for _, col := range metrics.RawColumns {
		if !t.HasColumn(col) {
			result.AddWarningf("column %q missing; reads as 0", col)
		}
	}

	seen := map[string]int{}
	unknown := map[string]bool{}
	for i, r := range t.Rows() {
		if r.Name == "" {
			result.AddWarningf("row %d has no player name", i+1)
		}
		if r.Club != "" && !unknown[r.Club] {
			if _, ok := config.ClubColor(r.Club); !ok {
				unknown[r.Club] = true
				result.AddWarningf("club %q not in colour registry", r.Club)
			}
		}
		if r.Name != "" {
			key := r.Name + "|" + r.Club
			if prev, dup := seen[key]; dup {
				result.AddWarningf("duplicate player %q at %s (rows %d and %d)", r.Name, r.Club, prev, i+1)
			} else {
				seen[key] = i + 1
			}
		}
	}
}
