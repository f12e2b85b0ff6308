package dashboard

import (
	"fmt"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// MaxCompareClubs caps a team report.
const MaxCompareClubs = 5

const topPerformers = 5

// TeamReport is the team analysis view for one or more clubs.
type TeamReport struct {
	Clubs         []string        `json:"clubs"`
	Missing       []string        `json:"missing,omitempty"`
	SquadSize     int             `json:"squad_size"`
	ActivePlayers int             `json:"active_players"`
	Goals         Headline        `json:"goals"`
	Assists       Headline        `json:"assists"`
	GoalsConceded Headline        `json:"goals_conceded"`
	Positions     []PositionCount `json:"positions"`
	Minutes       []PlayerMinutes `json:"minutes"`
	TopAttackers  []Leader        `json:"top_attackers"`
	TopPlaymakers []Leader        `json:"top_playmakers"`
	TopDefenders  []Leader        `json:"top_defenders"`
	Comparison    TeamComparison  `json:"comparison"`
	Details       []TeamDetail    `json:"details"`
}

// PlayerMinutes is one bar of the playing time chart.
type PlayerMinutes struct {
	Name     string  `json:"name"`
	Club     string  `json:"club"`
	Position string  `json:"position"`
	Minutes  float64 `json:"minutes"`
}

// TeamComparison holds the per-club comparison blocks.
type TeamComparison struct {
	Possession []PossessionRow `json:"possession"`
	Defense    []DefenseRadar  `json:"defense"`
	Attack     []AttackRow     `json:"attack"`
}

// PossessionRow is a club's possession and progressive play.
type PossessionRow struct {
	Club               string  `json:"club"`
	Passes             float64 `json:"passes"`
	PassesPct          float64 `json:"passes_pct"`
	ProgressiveCarries float64 `json:"progressive_carries"`
	FThirdPasses       float64 `json:"fthird_passes"`
	ThroughBalls       float64 `json:"through_balls"`
}

// DefenseRadar is a club's defensive radar: per-player means of the raw
// values and of their league-relative _norm companions.
type DefenseRadar struct {
	Club  string       `json:"club"`
	Color string       `json:"color"`
	Radar []RadarPoint `json:"radar"`
}

// AttackRow is a club's shot efficiency, rounded to two decimals.
type AttackRow struct {
	Club             string  `json:"club"`
	Color            string  `json:"color"`
	Goals            float64 `json:"goals"`
	Shots            float64 `json:"shots"`
	ShotsOnTarget    float64 `json:"shots_on_target"`
	BigChancesMissed float64 `json:"big_chances_missed"`
	ConversionRate   float64 `json:"conversion_rate"`
	ShotAccuracy     float64 `json:"shot_accuracy"`
}

// TeamDetail is one row of the detailed team statistics table.
type TeamDetail struct {
	Club  string `json:"club"`
	Stats []Stat `json:"stats"`
}

// DefenseMetrics are the spokes of the team defensive radar.
var DefenseMetrics = []string{
	metrics.ColTackles, metrics.ColInterceptions, metrics.ColBlocks,
	metrics.ColCleanSheets, metrics.ColPossessionWon,
}

var detailAggs = []metrics.Agg{
	metrics.Sum(metrics.ColGoals),
	metrics.Sum(metrics.ColAssists),
	metrics.Sum(metrics.ColShots),
	metrics.Sum(metrics.ColShotsOnTarget),
	metrics.Sum(metrics.ColPasses),
	metrics.Mean(metrics.ColPassesPct),
	metrics.Sum(metrics.ColProgressiveCarries),
	metrics.Sum(metrics.ColPossessionWon),
	metrics.Sum(metrics.ColTackles),
	metrics.Sum(metrics.ColInterceptions),
	metrics.Sum(metrics.ColBlocks),
	metrics.Sum(metrics.ColGroundDuels),
	metrics.Mean(metrics.ColGroundDuelsPct),
	metrics.Sum(metrics.ColAerialDuels),
	metrics.Mean(metrics.ColAerialDuelsPct),
	metrics.Sum(metrics.ColDispossessed),
}

// BuildTeamReport analyses the clubs in f.Clubs, with f's position and
// minutes filters applied to their players. At least one and at most
// MaxCompareClubs clubs are required; clubs absent from t are reported in
// Missing.
func BuildTeamReport(t *metrics.Table, f Filter) (TeamReport, error) {
	clubs := dedupe(f.Clubs)
	if len(clubs) == 0 {
		return TeamReport{}, fmt.Errorf("at least one club is required")
	}
	if len(clubs) > MaxCompareClubs {
		return TeamReport{}, fmt.Errorf("at most %d clubs can be compared", MaxCompareClubs)
	}

	known := set(t.Distinct(metrics.ColClub))
	rep := TeamReport{}
	for _, c := range clubs {
		if known[c] {
			rep.Clubs = append(rep.Clubs, c)
		} else {
			rep.Missing = append(rep.Missing, c)
		}
	}
	f.Clubs = rep.Clubs
	squad := metrics.NewTable(t.Columns(), t.TextColumns(), nil)
	if len(rep.Clubs) > 0 {
		squad = f.Apply(t)
	}

	rep.SquadSize = squad.Len()
	for _, r := range squad.Rows() {
		if r.Float(metrics.ColMinutes) > 0 {
			rep.ActivePlayers++
		}
		rep.Minutes = append(rep.Minutes, PlayerMinutes{
			Name: r.Name, Club: r.Club, Position: r.Position, Minutes: r.Float(metrics.ColMinutes),
		})
	}
	rep.Goals = headline(squad, metrics.ColGoals)
	rep.Assists = headline(squad, metrics.ColAssists)
	rep.GoalsConceded = headline(squad, metrics.ColGoalsConceded)
	rep.Positions = positionDistribution(squad)

	top := func(col string) []Leader {
		return leadersFrom(metrics.TopN(squad, col, topPerformers, false),
			func(r metrics.Record) float64 { return r.Float(col) })
	}
	rep.TopAttackers = top(metrics.ColForwardScore)
	rep.TopPlaymakers = top(metrics.ColMidfielderScore)
	rep.TopDefenders = top(metrics.ColDefenderScore)

	rep.Comparison = TeamComparison{
		Possession: possessionRows(squad),
		Defense:    defenseRadars(squad),
		Attack:     attackRows(squad),
	}
	rep.Details = teamDetails(squad)
	return rep, nil
}

func possessionRows(t *metrics.Table) []PossessionRow {
	groups := metrics.Aggregate(t, metrics.ColClub,
		metrics.Sum(metrics.ColPasses),
		metrics.Mean(metrics.ColPassesPct),
		metrics.Sum(metrics.ColProgressiveCarries),
		metrics.Sum(metrics.ColFThirdPasses),
		metrics.Sum(metrics.ColThroughBalls),
	)
	out := make([]PossessionRow, len(groups))
	for i, g := range groups {
		v := g.Values
		out[i] = PossessionRow{
			Club:               g.Key,
			Passes:             v[metrics.ColPasses],
			PassesPct:          v[metrics.ColPassesPct],
			ProgressiveCarries: v[metrics.ColProgressiveCarries],
			FThirdPasses:       v[metrics.ColFThirdPasses],
			ThroughBalls:       v[metrics.ColThroughBalls],
		}
	}
	return out
}

func defenseRadars(t *metrics.Table) []DefenseRadar {
	cols := make([]string, 0, 2*len(DefenseMetrics))
	for _, m := range DefenseMetrics {
		cols = append(cols, m, metrics.NormColumn(m))
	}
	groups := metrics.GroupByMean(t, metrics.ColClub, cols...)
	out := make([]DefenseRadar, len(groups))
	for i, g := range groups {
		d := DefenseRadar{Club: g.Key, Color: clubColor(g.Key), Radar: make([]RadarPoint, len(DefenseMetrics))}
		for j, m := range DefenseMetrics {
			d.Radar[j] = RadarPoint{Metric: m, Value: g.Values[m], Relative: g.Values[metrics.NormColumn(m)]}
		}
		out[i] = d
	}
	return out
}

func attackRows(t *metrics.Table) []AttackRow {
	groups := metrics.GroupBySum(t, metrics.ColClub,
		metrics.ColGoals, metrics.ColShots, metrics.ColShotsOnTarget, metrics.ColBigChancesMissed)
	out := make([]AttackRow, len(groups))
	for i, g := range groups {
		v := g.Values
		out[i] = AttackRow{
			Club:             g.Key,
			Color:            clubColor(g.Key),
			Goals:            v[metrics.ColGoals],
			Shots:            v[metrics.ColShots],
			ShotsOnTarget:    v[metrics.ColShotsOnTarget],
			BigChancesMissed: v[metrics.ColBigChancesMissed],
			ConversionRate:   metrics.Round2(metrics.Ratio(v[metrics.ColGoals], v[metrics.ColShots])),
			ShotAccuracy:     metrics.Round2(metrics.Ratio(v[metrics.ColShotsOnTarget], v[metrics.ColShots])),
		}
	}
	return out
}

// teamDetails builds the detailed statistics table. Clean Sheets only counts
// goalkeepers so a clean sheet is not credited once per outfield player.
func teamDetails(t *metrics.Table) []TeamDetail {
	groups := metrics.Aggregate(t, metrics.ColClub, detailAggs...)
	keepers := metrics.GroupBySum(
		t.Where(func(r metrics.Record) bool { return r.Position == "GKP" }),
		metrics.ColClub, metrics.ColCleanSheets,
	)

	out := make([]TeamDetail, len(groups))
	for i, g := range groups {
		d := TeamDetail{Club: g.Key, Stats: make([]Stat, 0, len(detailAggs)+1)}
		for _, a := range detailAggs {
			d.Stats = append(d.Stats, Stat{Name: a.Column, Value: g.Values[a.Column]})
		}
		var cs float64
		if k, ok := keepers.Get(g.Key); ok {
			cs = k.Values[metrics.ColCleanSheets]
		}
		d.Stats = append(d.Stats, Stat{Name: metrics.ColCleanSheets, Value: cs})
		out[i] = d
	}
	return out
}
