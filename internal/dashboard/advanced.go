package dashboard

import "github.com/josm18/EPL-2024-2025/internal/metrics"

// Index column names.
const (
	ColAttackIndex     = "Attack_Index"
	ColPossessionIndex = "Possession_Index"
)

// PositionMetrics are averaged per position, rounded to two decimals.
var PositionMetrics = []string{
	metrics.ColGoalsPer90, metrics.ColAssistsPer90, metrics.ColGoalsAssistsPer90,
	metrics.ColShotAccuracy, metrics.ColPassesPct, metrics.ColDefensivePer90,
	metrics.ColDuelSuccessRate, metrics.ColMinutes,
}

// OffensiveMetrics feed the position view's correlation matrix.
var OffensiveMetrics = []string{
	metrics.ColGoalsPer90, metrics.ColAssistsPer90, metrics.ColShotAccuracy,
	metrics.ColConversionPct, metrics.ColProgressivePer90,
}

// CorrelationMetrics feed the advanced view's correlation matrix.
var CorrelationMetrics = []string{
	metrics.ColGoals, metrics.ColAssists, metrics.ColShots, metrics.ColShotsOnTarget,
	metrics.ColPasses, metrics.ColSuccessfulPasses, metrics.ColProgressiveCarries,
	metrics.ColPossessionWon, metrics.ColMinutes,
}

// StyleMetrics describe a club's playing style.
var StyleMetrics = []string{
	metrics.ColPasses, metrics.ColProgressiveCarries, metrics.ColPossessionWon,
	metrics.ColGoals, metrics.ColShots,
}

var (
	attackInputs     = []string{metrics.ColGoals, metrics.ColAssists, metrics.ColShotsOnTarget}
	possessionInputs = []string{metrics.ColSuccessfulPasses, metrics.ColProgressiveCarries, metrics.ColPossessionWon}
)

// --------------------------------------------------------------------------
// Position breakdown
// --------------------------------------------------------------------------

// PositionRow is one position's averages.
type PositionRow struct {
	Position string `json:"position"`
	Players  int    `json:"players"`
	Stats    []Stat `json:"stats"`
}

// PositionBreakdown is the position analysis view.
type PositionBreakdown struct {
	Positions   []PositionRow  `json:"positions"`
	Correlation metrics.Matrix `json:"correlation"`
}

// BuildPositionBreakdown averages PositionMetrics per position and
// correlates the offensive metrics across all rows of t.
func BuildPositionBreakdown(t *metrics.Table) PositionBreakdown {
	groups := metrics.GroupByMean(t, metrics.ColPosition, PositionMetrics...)
	out := PositionBreakdown{
		Positions:   make([]PositionRow, len(groups)),
		Correlation: metrics.Correlation(t, OffensiveMetrics...),
	}
	for i, g := range groups {
		row := PositionRow{Position: g.Key, Players: g.Rows, Stats: make([]Stat, len(PositionMetrics))}
		for j, m := range PositionMetrics {
			row.Stats[j] = Stat{Name: m, Value: metrics.Round2(g.Values[m])}
		}
		out.Positions[i] = row
	}
	return out
}

// --------------------------------------------------------------------------
// Advanced metrics
// --------------------------------------------------------------------------

// Advanced is the advanced metrics view.
type Advanced struct {
	Correlation       metrics.Matrix `json:"correlation"`
	AttackLeaders     []Leader       `json:"attack_leaders"`
	PossessionLeaders []Leader       `json:"possession_leaders"`
	Indices           []IndexPoint   `json:"indices"`
	TeamStyle         []TeamStyle    `json:"team_style"`
}

// IndexPoint places a player on the attack/possession plane.
type IndexPoint struct {
	Name            string  `json:"name"`
	Club            string  `json:"club"`
	Position        string  `json:"position"`
	AttackIndex     float64 `json:"attack_index"`
	PossessionIndex float64 `json:"possession_index"`
}

// TeamStyle is a club's style profile as z-scores across clubs.
type TeamStyle struct {
	Club  string `json:"club"`
	Color string `json:"color"`
	Stats []Stat `json:"stats"`
}

const indexLeaders = 10

// BuildAdvanced computes the correlation matrix, the attack and possession
// indices with their top-10 leaders, and the club style profiles.
func BuildAdvanced(t *metrics.Table) Advanced {
	indexed := WithIndices(t)
	adv := Advanced{
		Correlation: metrics.Correlation(t, CorrelationMetrics...),
		Indices:     make([]IndexPoint, indexed.Len()),
		TeamStyle:   TeamStyles(t),
	}
	for i, r := range indexed.Rows() {
		adv.Indices[i] = IndexPoint{
			Name: r.Name, Club: r.Club, Position: r.Position,
			AttackIndex:     r.Float(ColAttackIndex),
			PossessionIndex: r.Float(ColPossessionIndex),
		}
	}
	value := func(col string) func(metrics.Record) float64 {
		return func(r metrics.Record) float64 { return r.Float(col) }
	}
	adv.AttackLeaders = leadersFrom(metrics.TopN(indexed, ColAttackIndex, indexLeaders, false), value(ColAttackIndex))
	adv.PossessionLeaders = leadersFrom(metrics.TopN(indexed, ColPossessionIndex, indexLeaders, false), value(ColPossessionIndex))
	return adv
}

// WithIndices returns t with Attack_Index and Possession_Index columns: the
// mean population z-score of their three inputs. A constant input
// contributes 0.
func WithIndices(t *metrics.Table) *metrics.Table {
	attack := meanZ(t, attackInputs)
	possession := meanZ(t, possessionInputs)

	rows := t.Rows()
	for i, r := range rows {
		values := r.Values()
		values[ColAttackIndex] = attack[i]
		values[ColPossessionIndex] = possession[i]
		text := map[string]string{}
		for _, c := range t.TextColumns() {
			text[c] = r.Text(c)
		}
		rows[i] = metrics.NewRecord(r.Name, r.Club, r.Position, values, text)
	}
	cols := append(t.Columns(), ColAttackIndex, ColPossessionIndex)
	return metrics.NewTable(cols, t.TextColumns(), rows)
}

func meanZ(t *metrics.Table, cols []string) []float64 {
	data := make([][]float64, len(cols))
	for i, c := range cols {
		data[i] = t.Column(c)
	}
	if out := metrics.MeanZScore(data...); out != nil {
		return out
	}
	return make([]float64, t.Len())
}

// TeamStyles z-scores the per-club means of StyleMetrics across clubs.
func TeamStyles(t *metrics.Table) []TeamStyle {
	groups := metrics.GroupByMean(t, metrics.ColClub, StyleMetrics...)
	z := make(map[string][]float64, len(StyleMetrics))
	for _, m := range StyleMetrics {
		z[m], _ = metrics.ZScore(groups.Column(m))
	}

	out := make([]TeamStyle, len(groups))
	for i, g := range groups {
		s := TeamStyle{Club: g.Key, Color: clubColor(g.Key), Stats: make([]Stat, len(StyleMetrics))}
		for j, m := range StyleMetrics {
			s.Stats[j] = Stat{Name: m, Value: z[m][i]}
		}
		out[i] = s
	}
	return out
}
