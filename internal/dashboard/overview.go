package dashboard

import "github.com/josm18/EPL-2024-2025/internal/metrics"

// Overview is the league-wide landing view.
type Overview struct {
	Players   int             `json:"players"`
	Goals     Headline        `json:"goals"`
	Assists   Headline        `json:"assists"`
	Minutes   MinutesSummary  `json:"minutes"`
	Positions []PositionCount `json:"positions"`
	Teams     []TeamRow       `json:"teams"`
	BuildUp   []BuildUpRow    `json:"build_up"`
}

// MinutesSummary is the mean and sample standard deviation of minutes played.
type MinutesSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// TeamRow is one club in the team performance table.
type TeamRow struct {
	Club                string  `json:"club"`
	Color               string  `json:"color"`
	Goals               float64 `json:"goals"`
	Assists             float64 `json:"assists"`
	GoalsConceded       float64 `json:"goals_conceded"`
	Shots               float64 `json:"shots"`
	ShotsOnTarget       float64 `json:"shots_on_target"`
	GoalsPer90          float64 `json:"goals_per_90"`
	DefensivePer90      float64 `json:"defensive_per_90"`
	ConversionRate      float64 `json:"conversion_rate"`
	DefensiveEfficiency float64 `json:"defensive_efficiency"`
}

// BuildUpRow holds a club's average build-up profile per player.
type BuildUpRow struct {
	Club               string  `json:"club"`
	Color              string  `json:"color"`
	Passes             float64 `json:"passes"`
	PassesPct          float64 `json:"passes_pct"`
	ProgressiveCarries float64 `json:"progressive_carries"`
	PossessionWon      float64 `json:"possession_won"`
	CrossesPct         float64 `json:"crosses_pct"`
	FThirdPasses       float64 `json:"fthird_passes"`
}

// BuildOverview summarizes t, which is usually already filtered.
func BuildOverview(t *metrics.Table) Overview {
	minutes := metrics.Describe(t.Column(metrics.ColMinutes))
	return Overview{
		Players:   t.Len(),
		Goals:     headline(t, metrics.ColGoals),
		Assists:   headline(t, metrics.ColAssists),
		Minutes:   MinutesSummary{Mean: minutes.Mean, Std: minutes.Std},
		Positions: positionDistribution(t),
		Teams:     TeamTable(t),
		BuildUp:   BuildUp(t),
	}
}

// TeamTable aggregates per club. Conversion rate is Goals/Shots and
// defensive efficiency is Shots On Target/Goals Conceded, both as percent
// and 0 when the denominator is 0.
func TeamTable(t *metrics.Table) []TeamRow {
	groups := metrics.Aggregate(t, metrics.ColClub,
		metrics.Sum(metrics.ColGoals),
		metrics.Sum(metrics.ColAssists),
		metrics.Sum(metrics.ColGoalsConceded),
		metrics.Sum(metrics.ColShots),
		metrics.Sum(metrics.ColShotsOnTarget),
		metrics.Mean(metrics.ColGoalsPer90),
		metrics.Mean(metrics.ColDefensivePer90),
	)
	out := make([]TeamRow, len(groups))
	for i, g := range groups {
		v := g.Values
		out[i] = TeamRow{
			Club:                g.Key,
			Color:               clubColor(g.Key),
			Goals:               v[metrics.ColGoals],
			Assists:             v[metrics.ColAssists],
			GoalsConceded:       v[metrics.ColGoalsConceded],
			Shots:               v[metrics.ColShots],
			ShotsOnTarget:       v[metrics.ColShotsOnTarget],
			GoalsPer90:          v[metrics.ColGoalsPer90],
			DefensivePer90:      v[metrics.ColDefensivePer90],
			ConversionRate:      metrics.Ratio(v[metrics.ColGoals], v[metrics.ColShots]),
			DefensiveEfficiency: metrics.Ratio(v[metrics.ColShotsOnTarget], v[metrics.ColGoalsConceded]),
		}
	}
	return out
}

// BuildUp returns per-club means of the build-up columns.
func BuildUp(t *metrics.Table) []BuildUpRow {
	groups := metrics.GroupByMean(t, metrics.ColClub,
		metrics.ColPasses, metrics.ColPassesPct, metrics.ColProgressiveCarries,
		metrics.ColPossessionWon, metrics.ColCrossesPct, metrics.ColFThirdPasses,
	)
	out := make([]BuildUpRow, len(groups))
	for i, g := range groups {
		v := g.Values
		out[i] = BuildUpRow{
			Club:               g.Key,
			Color:              clubColor(g.Key),
			Passes:             v[metrics.ColPasses],
			PassesPct:          v[metrics.ColPassesPct],
			ProgressiveCarries: v[metrics.ColProgressiveCarries],
			PossessionWon:      v[metrics.ColPossessionWon],
			CrossesPct:         v[metrics.ColCrossesPct],
			FThirdPasses:       v[metrics.ColFThirdPasses],
		}
	}
	return out
}
