package metrics

import (
	"fmt"
	"math"
)

// Weight is one term of a role score.
type Weight struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
}

// Weights is an ordered weighted linear combination of named metrics. Terms
// are summed in order so scores are bit-reproducible.
type Weights []Weight

// Score returns Σ weight·value over the terms. A metric missing from r
// contributes nothing.
func (w Weights) Score(r Record) float64 {
	var score float64
	for _, term := range w {
		if v, ok := r.Value(term.Metric); ok {
			score += term.Weight * v
		}
	}
	return score
}

// Validate rejects empty or repeated metric names and non-finite weights.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("weights: no terms")
	}
	seen := make(map[string]bool, len(w))
	for _, term := range w {
		if term.Metric == "" {
			return fmt.Errorf("weights: empty metric name")
		}
		if seen[term.Metric] {
			return fmt.Errorf("weights: duplicate metric %q", term.Metric)
		}
		if math.IsNaN(term.Weight) || math.IsInf(term.Weight, 0) {
			return fmt.Errorf("weights: metric %q has non-finite weight", term.Metric)
		}
		seen[term.Metric] = true
	}
	return nil
}

func (w Weights) clone() Weights {
	return append(Weights(nil), w...)
}

// --------------------------------------------------------------------------
// Role weight tables
// --------------------------------------------------------------------------

var forwardWeights = Weights{
	{ColGoals, 0.35},
	{ColShotsOnTarget, 0.2},
	{ColShots, 0.15},
	{ColConversionPct, 0.2},
	{ColAssists, 0.15},
	{ColCrossesPct, 0.1},
	{ColFThirdPassesPct, 0.05},
	{ColSuccessfulFThirdPasses, 0.1},
	{ColCarriesEndedGoal, 0.15},
	{ColCarriesEndedAssist, 0.15},
	{ColCarriesEndedShot, 0.1},
	{ColHitWoodwork, 0.05},
	{ColBigChancesMissed, -0.1},
	{ColOffsides, -0.05},
	{ColDispossessed, -0.05},
}

var midfielderWeights = Weights{
	{ColGoals, 0.25},
	{ColShotsOnTarget, 0.1},
	{ColShots, 0.1},
	{ColConversionPct, 0.1},
	{ColPassesPct, 0.1},
	{ColAssists, 0.15},
	{ColCrossesPct, 0.1},
	{ColFThirdPasses, 0.15},
	{ColSuccessfulFThirdPasses, 0.1},
	{ColThroughBalls, 0.1},
	{ColHitWoodwork, 0.005},
	{ColBigChancesMissed, -0.05},
	{ColOffsides, -0.05},
	{ColTackles, 0.1},
	{ColInterceptions, 0.1},
	{ColCarriesEndedGoal, 0.15},
	{ColCarriesEndedAssist, 0.15},
	{ColCarriesEndedShot, 0.1},
	{ColClearances, 0.1},
	{ColAerialDuelsPct, 0.1},
	{ColGroundDuelsPct, 0.1},
	{ColPossessionWon, 0.1},
	{ColDispossessed, -0.1},
}

var defenderWeights = Weights{
	{ColTackles, 0.2},
	{ColInterceptions, 0.2},
	{ColCleanSheets, 0.2},
	{ColClearances, 0.1},
	{ColAerialDuelsPct, 0.1},
	{ColGroundDuelsPct, 0.1},
	{ColPossessionWon, 0.1},
	{ColDispossessed, -0.2},
	{ColOwnGoals, -0.3},
	{ColPassesPct, 0.1},
}

var goalkeeperWeights = Weights{
	{ColSavesPct, 0.25},
	{ColSaves, 0.2},
	{ColGoalsPrevented, 0.25},
	{ColHighClaims, 0.15},
	{ColPassesPct, 0.1},
	{ColPenaltiesSaved, 0.1},
	{ColPunches, 0.05},
	{ColDispossessed, -0.1},
	{ColGoalsConceded, -0.2},
}

var cardWeights = Weights{
	{ColYellowCards, 0.5},
	{ColRedCards, 1},
}

// ForwardWeights returns a copy of the forward role table.
func ForwardWeights() Weights { return forwardWeights.clone() }

// MidfielderWeights returns a copy of the midfielder role table.
func MidfielderWeights() Weights { return midfielderWeights.clone() }

// DefenderWeights returns a copy of the defender role table.
func DefenderWeights() Weights { return defenderWeights.clone() }

// GoalkeeperWeights returns a copy of the goalkeeper role table.
func GoalkeeperWeights() Weights { return goalkeeperWeights.clone() }

// CardWeights returns a copy of the disciplinary table.
func CardWeights() Weights { return cardWeights.clone() }

// Role binds an output column to the weights that produce it.
type Role struct {
	Column  string
	Weights Weights
}

// DefaultRoles returns the four role scores plus the card score.
func DefaultRoles() []Role {
	return []Role{
		{Column: ColForwardScore, Weights: ForwardWeights()},
		{Column: ColMidfielderScore, Weights: MidfielderWeights()},
		{Column: ColDefenderScore, Weights: DefenderWeights()},
		{Column: ColGoalkeeperScore, Weights: GoalkeeperWeights()},
		{Column: ColCardScore, Weights: CardWeights()},
	}
}

// ValidateRoles checks every role's weights and rejects output columns that
// are blank, repeated, or would overwrite an identity, raw, feature or
// _norm column.
func ValidateRoles(roles []Role) error {
	reserved := make(map[string]bool, len(RawColumns)+len(FeatureColumns))
	for _, c := range RawColumns {
		reserved[c] = true
	}
	for _, c := range FeatureColumns {
		reserved[c] = true
	}
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		switch {
		case role.Column == "":
			return fmt.Errorf("role: empty output column")
		case seen[role.Column]:
			return fmt.Errorf("role: duplicate output column %q", role.Column)
		case reserved[role.Column] || IsIdentityColumn(role.Column) || IsNormColumn(role.Column):
			return fmt.Errorf("role: output column %q is reserved", role.Column)
		}
		if err := role.Weights.Validate(); err != nil {
			return fmt.Errorf("role %q: %w", role.Column, err)
		}
		seen[role.Column] = true
	}
	return nil
}

func init() {
	if err := ValidateRoles(DefaultRoles()); err != nil {
		panic(err)
	}
}

// DeriveScores adds one column per role. Roles are evaluated against the
// row as it stands before any role column is added.
func DeriveScores(t *Table, roles []Role) *Table {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Column
	}
	cols := appendMissing(t.Columns(), names...)
	return t.mapRows(cols, func(r Record) Record {
		scores := make(map[string]float64, len(roles))
		for _, role := range roles {
			scores[role.Column] = role.Weights.Score(r)
		}
		return r.with(scores, nil)
	})
}
