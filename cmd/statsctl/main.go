// Command statsctl computes the enriched EPL season table and prints
// dashboard views from the command line.
//
// Usage:
//
//	statsctl compute --out enriched.csv
//	statsctl leaders --by Goals_per_90 --n 10 --min-minutes 900
//	statsctl teams --club Arsenal --club Liverpool
//	statsctl compare --player "Mohamed Salah" --player "Cole Palmer" --set offensive
//	statsctl check --data data/epl_player_stats_24_25.csv
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/dashboard"
	"github.com/josm18/EPL-2024-2025/internal/dataset"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
	"github.com/josm18/EPL-2024-2025/internal/provider"
)

// Logs go to stderr so stdout stays clean JSON or CSV.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

var dataPath string

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "statsctl",
		Short:        "EPL 2024/25 player stats CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", "", "CSV path (overrides EPL_DATA_PATH and DATABASE_URL)")

	root.AddCommand(computeCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(overviewCmd())
	root.AddCommand(leadersCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(positionsCmd())
	root.AddCommand(advancedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// compute / check
// --------------------------------------------------------------------------

func computeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Write the enriched table (derived, score and _norm columns) as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				w := cmd.OutOrStdout()
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}
				if err := writeCSV(w, t); err != nil {
					return err
				}
				if out != "" && out != "-" {
					logger.Info("Enriched table written", "path", out, "rows", t.Len(), "columns", len(t.Columns()))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the dataset and report data-quality warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(_ *metrics.Table, result dataset.LoadResult) error {
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

// --------------------------------------------------------------------------
// dashboard views
// --------------------------------------------------------------------------

// filterFlags registers the shared club/position/minutes flags.
func filterFlags(cmd *cobra.Command, clubs, positions *[]string, minMinutes *float64) {
	cmd.Flags().StringSliceVar(clubs, "club", nil, "Club filter (repeatable)")
	cmd.Flags().StringSliceVar(positions, "position", nil, "Position filter (GKP, DEF, MID, FWD)")
	cmd.Flags().Float64Var(minMinutes, "min-minutes", 0, "Minimum minutes played")
}

func overviewCmd() *cobra.Command {
	var clubs, positions []string
	var minMinutes float64
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "League totals, position distribution and team tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				f := buildFilter(clubs, positions, minMinutes)
				return printJSON(cmd.OutOrStdout(), dashboard.BuildOverview(f.Apply(t)))
			})
		},
	}
	filterFlags(cmd, &clubs, &positions, &minMinutes)
	return cmd
}

func leadersCmd() *cobra.Command {
	var (
		by  string
		n   int
		asc bool
	)
	var clubs, positions []string
	var minMinutes float64
	cmd := &cobra.Command{
		Use:   "leaders",
		Short: "Rank players by any numeric column",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--n must be at least 1")
			}
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				f := buildFilter(clubs, positions, minMinutes)
				leaders, err := dashboard.Leaders(f.Apply(t), by, n, asc)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), leaders)
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", metrics.ColForwardScore, "Column to rank by")
	cmd.Flags().IntVar(&n, "n", 10, "Number of players")
	cmd.Flags().BoolVar(&asc, "asc", false, "Rank ascending")
	filterFlags(cmd, &clubs, &positions, &minMinutes)
	return cmd
}

func compareCmd() *cobra.Command {
	var (
		players []string
		set     string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare up to five players on a metric set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := dashboard.ParseMetricSet(set)
			if err != nil {
				return err
			}
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				cmp, err := dashboard.PlayerComparison(t, players, ms)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), cmp)
			})
		},
	}
	cmd.Flags().StringArrayVar(&players, "player", nil, "Player name (repeatable, 1-5)")
	cmd.Flags().StringVar(&set, "set", string(dashboard.SetOffensive), "Metric set (offensive, defensive, possession)")
	return cmd
}

func teamsCmd() *cobra.Command {
	var clubs, positions []string
	var minMinutes float64
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Team analysis for one to five clubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				rep, err := dashboard.BuildTeamReport(t, buildFilter(clubs, positions, minMinutes))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
	filterFlags(cmd, &clubs, &positions, &minMinutes)
	return cmd
}

func positionsCmd() *cobra.Command {
	var clubs, positions []string
	var minMinutes float64
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Per-position averages and offensive correlations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				f := buildFilter(clubs, positions, minMinutes)
				return printJSON(cmd.OutOrStdout(), dashboard.BuildPositionBreakdown(f.Apply(t)))
			})
		},
	}
	filterFlags(cmd, &clubs, &positions, &minMinutes)
	return cmd
}

func advancedCmd() *cobra.Command {
	var clubs, positions []string
	var minMinutes float64
	cmd := &cobra.Command{
		Use:   "advanced",
		Short: "Correlations, attack/possession indices and team styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoaded(func(t *metrics.Table, _ dataset.LoadResult) error {
				f := buildFilter(clubs, positions, minMinutes)
				return printJSON(cmd.OutOrStdout(), dashboard.BuildAdvanced(f.Apply(t)))
			})
		},
	}
	filterFlags(cmd, &clubs, &positions, &minMinutes)
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runLoaded handles config loading, source selection, and context cancellation.
func runLoaded(fn func(t *metrics.Table, result dataset.LoadResult) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
		cfg.DatabaseURL = ""
	}

	src, _, closeSource, err := dataset.SourceFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	t, result, err := dataset.Load(ctx, src, logger)
	if err != nil {
		return err
	}
	return fn(t, result)
}

func buildFilter(clubs, positions []string, minMinutes float64) dashboard.Filter {
	f := dashboard.Filter{MinMinutes: minMinutes}
	for _, c := range clubs {
		f.Clubs = append(f.Clubs, provider.CanonicalClub(c))
	}
	for _, p := range positions {
		f.Positions = append(f.Positions, provider.CanonicalPosition(p))
	}
	return f
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
