package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// MaxComparePlayers caps a player comparison.
const MaxComparePlayers = 5

var (
	// ErrTooManyPlayers is returned when more than MaxComparePlayers are requested.
	ErrTooManyPlayers = fmt.Errorf("at most %d players can be compared", MaxComparePlayers)
	// ErrNoPlayers is returned when a comparison names no players.
	ErrNoPlayers = errors.New("no players selected")
)

// MetricSet selects the radar and detail columns of a comparison.
type MetricSet string

const (
	SetOffensive  MetricSet = "offensive"
	SetDefensive  MetricSet = "defensive"
	SetPossession MetricSet = "possession"
)

// MetricSets lists the valid sets.
var MetricSets = []MetricSet{SetOffensive, SetDefensive, SetPossession}

// ParseMetricSet accepts a set name case-insensitively; empty means offensive.
func ParseMetricSet(s string) (MetricSet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SetOffensive, nil
	}
	for _, m := range MetricSets {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric set %q (want offensive, defensive or possession)", s)
}

// RadarMetrics are the columns plotted on the comparison radar.
func (s MetricSet) RadarMetrics() []string {
	switch s {
	case SetDefensive:
		return []string{
			metrics.ColTackles, metrics.ColInterceptions, metrics.ColBlocks,
			metrics.ColPossessionWon, metrics.ColGroundDuelsWon, metrics.ColAerialDuelsWon,
		}
	case SetPossession:
		return []string{
			metrics.ColPassesPct, metrics.ColProgressiveCarries, metrics.ColFThirdPassesPct,
			metrics.ColPossessionWon, metrics.ColDispossessed,
		}
	default:
		return []string{
			metrics.ColGoals, metrics.ColAssists, metrics.ColShotsOnTarget,
			metrics.ColConversionPct, metrics.ColBigChancesMissed, metrics.ColThroughBalls,
		}
	}
}

// DetailColumns are the numeric columns of the detailed statistics table.
func (s MetricSet) DetailColumns() []string {
	switch s {
	case SetDefensive:
		return []string{
			metrics.ColMinutes, metrics.ColTackles, metrics.ColInterceptions, metrics.ColBlocks,
			metrics.ColPossessionWon, metrics.ColCleanSheets,
			metrics.ColGroundDuels, metrics.ColGroundDuelsWon, metrics.ColGroundDuelsPct,
			metrics.ColAerialDuels, metrics.ColAerialDuelsWon, metrics.ColAerialDuelsPct,
			metrics.ColYellowCards, metrics.ColRedCards, metrics.ColCardScore,
		}
	case SetPossession:
		return []string{
			metrics.ColMinutes, metrics.ColPasses, metrics.ColSuccessfulPasses, metrics.ColPassesPct,
			metrics.ColProgressiveCarries, metrics.ColFThirdPasses, metrics.ColFThirdPassesPct,
			metrics.ColThroughBalls, metrics.ColDispossessed,
		}
	default:
		return []string{
			metrics.ColMinutes, metrics.ColGoals, metrics.ColAssists, metrics.ColShots,
			metrics.ColShotsOnTarget, metrics.ColConversionPct, metrics.ColBigChancesMissed,
			metrics.ColThroughBalls, metrics.ColCarriesEndedShot,
		}
	}
}

// RadarPoint is one spoke: the raw value and its column-max relative value.
type RadarPoint struct {
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	Relative float64 `json:"relative"`
}

// PlayerProfile is one player in a comparison.
type PlayerProfile struct {
	Name     string       `json:"name"`
	Club     string       `json:"club"`
	Position string       `json:"position"`
	Color    string       `json:"color"`
	Radar    []RadarPoint `json:"radar"`
	Details  []Stat       `json:"details"`
}

// Comparison is the player comparison view.
type Comparison struct {
	Set     MetricSet       `json:"set"`
	Metrics []string        `json:"metrics"`
	Players []PlayerProfile `json:"players"`
	Missing []string        `json:"missing,omitempty"`
}

// PlayerComparison profiles the named players in request order. Names are
// matched exactly; the first row wins when a name repeats. Unknown names are
// reported in Missing. Relative values come from the table's _norm columns,
// so they are relative to the whole league, not to the selection.
func PlayerComparison(t *metrics.Table, names []string, set MetricSet) (Comparison, error) {
	names = dedupe(names)
	if len(names) == 0 {
		return Comparison{}, ErrNoPlayers
	}
	if len(names) > MaxComparePlayers {
		return Comparison{}, ErrTooManyPlayers
	}

	byName := make(map[string]metrics.Record, t.Len())
	for _, r := range t.Rows() {
		if _, seen := byName[r.Name]; !seen {
			byName[r.Name] = r
		}
	}

	radar := set.RadarMetrics()
	cmp := Comparison{Set: set, Metrics: radar, Players: []PlayerProfile{}}
	for _, name := range names {
		r, ok := byName[name]
		if !ok {
			cmp.Missing = append(cmp.Missing, name)
			continue
		}
		p := PlayerProfile{
			Name:     r.Name,
			Club:     r.Club,
			Position: r.Position,
			Color:    clubColor(r.Club),
			Radar:    make([]RadarPoint, len(radar)),
			Details:  stats(r, set.DetailColumns()),
		}
		for i, m := range radar {
			p.Radar[i] = RadarPoint{Metric: m, Value: r.Float(m), Relative: r.Float(metrics.NormColumn(m))}
		}
		cmp.Players = append(cmp.Players, p)
	}
	return cmp, nil
}

func dedupe(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// --------------------------------------------------------------------------
// Leaders
// --------------------------------------------------------------------------

// Leader is one row of a ranking.
type Leader struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Club     string  `json:"club"`
	Position string  `json:"position"`
	Value    float64 `json:"value"`
}

// Leaders ranks t by column by. It fails when by is not a numeric column.
func Leaders(t *metrics.Table, by string, n int, ascending bool) ([]Leader, error) {
	if !t.HasColumn(by) {
		return nil, fmt.Errorf("unknown column %q", by)
	}
	return leadersFrom(metrics.TopN(t, by, n, ascending), func(r metrics.Record) float64 { return r.Float(by) }), nil
}

func leadersFrom(rows []metrics.Record, value func(metrics.Record) float64) []Leader {
	out := make([]Leader, len(rows))
	for i, r := range rows {
		out[i] = Leader{Rank: i + 1, Name: r.Name, Club: r.Club, Position: r.Position, Value: value(r)}
	}
	return out
}
