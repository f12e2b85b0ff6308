package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleTables(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		terms   int
		sum     float64
	}{
		{"forward", ForwardWeights(), 15, 1.55},
		{"midfielder", MidfielderWeights(), 23, 2.055},
		{"defender", DefenderWeights(), 10, 0.6},
		{"goalkeeper", GoalkeeperWeights(), 9, 0.8},
		{"cards", CardWeights(), 2, 1.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.weights.Validate())
			assert.Len(t, tc.weights, tc.terms)

			var total float64
			for _, w := range tc.weights {
				total += w.Weight
			}
			assert.InDelta(t, tc.sum, total, 1e-9)
		})
	}
}

// Header names are spelled out rather than taken from the Col constants so a
// mistyped constant fails here too.
func TestRoleTables_Golden(t *testing.T) {
	golden := map[string]Weights{
		"forward": {
			{"Goals", 0.35}, {"Shots On Target", 0.2}, {"Shots", 0.15}, {"Conversion %", 0.2},
			{"Assists", 0.15}, {"Crosses %", 0.1}, {"fThird Passes %", 0.05},
			{"Successful fThird Passes", 0.1}, {"Carries Ended with Goal", 0.15},
			{"Carries Ended with Assist", 0.15}, {"Carries Ended with Shot", 0.1},
			{"Hit Woodwork", 0.05}, {"Big Chances Missed", -0.1}, {"Offsides", -0.05},
			{"Dispossessed", -0.05},
		},
		"midfielder": {
			{"Goals", 0.25}, {"Shots On Target", 0.1}, {"Shots", 0.1}, {"Conversion %", 0.1},
			{"Passes %", 0.1}, {"Assists", 0.15}, {"Crosses %", 0.1}, {"fThird Passes", 0.15},
			{"Successful fThird Passes", 0.1}, {"Through Balls", 0.1}, {"Hit Woodwork", 0.005},
			{"Big Chances Missed", -0.05}, {"Offsides", -0.05}, {"Tackles", 0.1},
			{"Interceptions", 0.1}, {"Carries Ended with Goal", 0.15},
			{"Carries Ended with Assist", 0.15}, {"Carries Ended with Shot", 0.1},
			{"Clearances", 0.1}, {"aDuels %", 0.1}, {"gDuels %", 0.1}, {"Possession Won", 0.1},
			{"Dispossessed", -0.1},
		},
		"defender": {
			{"Tackles", 0.2}, {"Interceptions", 0.2}, {"Clean Sheets", 0.2}, {"Clearances", 0.1},
			{"aDuels %", 0.1}, {"gDuels %", 0.1}, {"Possession Won", 0.1}, {"Dispossessed", -0.2},
			{"Own Goals", -0.3}, {"Passes %", 0.1},
		},
		"goalkeeper": {
			{"Saves %", 0.25}, {"Saves", 0.2}, {"Goals Prevented", 0.25}, {"High Claims", 0.15},
			{"Passes %", 0.1}, {"Penalties Saved", 0.1}, {"Punches", 0.05},
			{"Dispossessed", -0.1}, {"Goals Conceded", -0.2},
		},
		"cards": {{"Yellow Cards", 0.5}, {"Red Cards", 1}},
	}
	tables := map[string]Weights{
		"forward":    ForwardWeights(),
		"midfielder": MidfielderWeights(),
		"defender":   DefenderWeights(),
		"goalkeeper": GoalkeeperWeights(),
		"cards":      CardWeights(),
	}

	pairs := 0
	for name, want := range golden {
		assert.Equal(t, want, tables[name], name)
		pairs += len(want)
	}
	assert.Equal(t, 59, pairs)
}

func TestRoleTables_SpotWeights(t *testing.T) {
	find := func(w Weights, metric string) float64 {
		for _, term := range w {
			if term.Metric == metric {
				return term.Weight
			}
		}
		t.Fatalf("metric %q not in table", metric)
		return 0
	}

	assert.Equal(t, 0.35, find(ForwardWeights(), ColGoals))
	assert.Equal(t, -0.1, find(ForwardWeights(), ColBigChancesMissed))
	assert.Equal(t, 0.005, find(MidfielderWeights(), ColHitWoodwork))
	assert.Equal(t, 0.15, find(MidfielderWeights(), ColFThirdPasses))
	assert.Equal(t, -0.3, find(DefenderWeights(), ColOwnGoals))
	assert.Equal(t, -0.2, find(GoalkeeperWeights(), ColGoalsConceded))
	assert.Equal(t, 0.25, find(GoalkeeperWeights(), ColGoalsPrevented))
}

func TestWeights_CopiesAreIndependent(t *testing.T) {
	w := ForwardWeights()
	w[0].Weight = 99
	assert.Equal(t, 0.35, ForwardWeights()[0].Weight)
}

func TestScore_MissingFieldsContributeNothing(t *testing.T) {
	// A forward row with no goalkeeper fields at all.
	r := row("A", "Arsenal", "FWD", map[string]float64{
		ColGoals: 2, ColShots: 5, ColShotsOnTarget: 3,
	})

	forward := ForwardWeights().Score(r)
	assert.False(t, math.IsNaN(forward))
	assert.InDelta(t, 2*0.35+3*0.2+5*0.15, forward, 1e-12)

	assert.Equal(t, 0.0, GoalkeeperWeights().Score(r))
}

func TestScore_NegativeWeightsPenalize(t *testing.T) {
	r := row("A", "Arsenal", "DEF", map[string]float64{
		ColTackles: 10, ColOwnGoals: 2, ColDispossessed: 5,
	})
	assert.InDelta(t, 10*0.2-2*0.3-5*0.2, DefenderWeights().Score(r), 1e-12)
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		valid   bool
	}{
		{"ok", Weights{{"Goals", 1}}, true},
		{"empty", Weights{}, false},
		{"blank metric", Weights{{"", 1}}, false},
		{"duplicate", Weights{{"Goals", 1}, {"Goals", 2}}, false},
		{"nan", Weights{{"Goals", math.NaN()}}, false},
	}
	for _, tc := range tests {
		err := tc.weights.Validate()
		if tc.valid {
			assert.NoError(t, err, tc.name)
		} else {
			assert.Error(t, err, tc.name)
		}
	}
}

func TestValidateRoles(t *testing.T) {
	ok := Weights{{ColGoals, 1}}
	tests := []struct {
		name  string
		roles []Role
		valid bool
	}{
		{"defaults", DefaultRoles(), true},
		{"custom", []Role{{Column: "Poacher_Score", Weights: ok}}, true},
		{"blank column", []Role{{Column: "", Weights: ok}}, false},
		{"duplicate column", []Role{{Column: "X", Weights: ok}, {Column: "X", Weights: ok}}, false},
		{"raw column", []Role{{Column: ColGoals, Weights: ok}}, false},
		{"feature column", []Role{{Column: ColGoalsPer90, Weights: ok}}, false},
		{"identity column", []Role{{Column: ColClub, Weights: ok}}, false},
		{"norm column", []Role{{Column: NormColumn("X"), Weights: ok}}, false},
		{"bad weights", []Role{{Column: "X", Weights: Weights{{"Goals", math.Inf(1)}}}}, false},
	}
	for _, tc := range tests {
		err := ValidateRoles(tc.roles)
		if tc.valid {
			assert.NoError(t, err, tc.name)
		} else {
			assert.Error(t, err, tc.name)
		}
	}
}

func TestComputeMetricsWith_RejectsInvalidRoles(t *testing.T) {
	out, err := ComputeMetricsWith(sampleTable(), []Role{{Column: "Bad", Weights: Weights{}}})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestComputeMetricsWith_CustomRoles(t *testing.T) {
	roles := []Role{{Column: "Poacher_Score", Weights: Weights{{ColGoals, 1}, {ColOffsides, -1}}}}
	raw := NewTable(RawColumns, nil, []Record{
		row("A", "Arsenal", "FWD", map[string]float64{ColGoals: 10, ColOffsides: 4}),
		row("B", "Arsenal", "FWD", map[string]float64{ColGoals: 3}),
	})

	out, err := ComputeMetricsWith(raw, roles)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 3}, out.Column("Poacher_Score"))
	assert.Equal(t, []float64{1, 0.5}, out.Column(NormColumn("Poacher_Score")))
	assert.False(t, out.HasColumn(ColForwardScore))
}
