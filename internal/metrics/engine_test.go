package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a record with the given numeric fields.
func row(name, club, pos string, values map[string]float64) Record {
	return NewRecord(name, club, pos, values, nil)
}

// sampleTable is a small mixed-position squad.
func sampleTable() *Table {
	rows := []Record{
		row("Striker", "Arsenal", "FWD", map[string]float64{
			ColMinutes: 90, ColAppearances: 1, ColGoals: 2, ColAssists: 1,
			ColShots: 5, ColShotsOnTarget: 3, ColTackles: 1,
			ColGroundDuels: 6, ColGroundDuelsWon: 3, ColAerialDuels: 4, ColAerialDuelsWon: 1,
			ColYellowCards: 1,
		}),
		row("Keeper", "Chelsea", "GKP", map[string]float64{
			ColMinutes: 180, ColAppearances: 2, ColCleanSheets: 1, ColSaves: 7,
			ColSavesPct: 70, ColGoalsConceded: 3, ColGoalsPrevented: -0.5,
		}),
		row("Bench", "Chelsea", "MID", map[string]float64{
			ColMinutes: 0, ColAppearances: 0, ColGoals: 1,
		}),
	}
	return NewTable(RawColumns, nil, rows)
}

func finite(t *testing.T, tbl *Table) {
	t.Helper()
	for _, r := range tbl.Rows() {
		for _, c := range tbl.Columns() {
			v := r.Float(c)
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s/%s = %v", r.Name, c, v)
		}
	}
}

func TestComputeMetrics_ConcreteScenario(t *testing.T) {
	raw := NewTable(RawColumns, nil, []Record{
		row("A", "Arsenal", "FWD", map[string]float64{
			ColGoals: 2, ColMinutes: 90, ColShots: 5, ColShotsOnTarget: 3,
		}),
	})

	out := ComputeMetrics(raw)
	r := out.Row(0)

	assert.Equal(t, 2.0, r.Float(ColGoalsPer90))
	assert.Equal(t, 60.0, r.Float(ColShotAccuracy))
	assert.Equal(t, 2.0, r.Float(ColGoalContributions))
	assert.Equal(t, 90.0, r.Float(ColMinutesPlayed))
}

func TestComputeMetrics_ZeroMinutes(t *testing.T) {
	raw := NewTable(RawColumns, nil, []Record{
		row("A", "Arsenal", "MID", map[string]float64{ColGoals: 7, ColMinutes: 0}),
		row("B", "Arsenal", "MID", map[string]float64{ColGoals: 3, ColMinutes: -10}),
		row("C", "Arsenal", "MID", map[string]float64{ColGoals: 3}),
	})

	out := ComputeMetrics(raw)
	per90 := []string{ColGoalsPer90, ColAssistsPer90, ColGoalsAssistsPer90, ColProgressivePer90, ColDefensivePer90}
	for _, r := range out.Rows() {
		for _, c := range per90 {
			v, ok := r.Value(c)
			require.True(t, ok, "%s missing %s", r.Name, c)
			assert.Equal(t, 0.0, v, "%s %s", r.Name, c)
		}
	}
}

func TestComputeMetrics_RatioGuards(t *testing.T) {
	raw := NewTable(RawColumns, nil, []Record{
		row("A", "Arsenal", "DEF", map[string]float64{
			ColMinutes: 900, ColShots: 0, ColShotsOnTarget: 0,
			ColGroundDuels: 0, ColAerialDuels: 0, ColGroundDuelsWon: 0,
			ColAppearances: 0, ColCleanSheets: 0,
		}),
	})

	r := ComputeMetrics(raw).Row(0)
	for _, c := range []string{ColShotAccuracy, ColDuelSuccessRate, ColCleanSheetRate} {
		v, ok := r.Value(c)
		require.True(t, ok)
		assert.Equal(t, 0.0, v, c)
	}
}

func TestComputeMetrics_DuelAndCleanSheetRates(t *testing.T) {
	r := ComputeMetrics(sampleTable()).Row(0)
	assert.InDelta(t, 40.0, r.Float(ColDuelSuccessRate), 1e-9)

	keeper := ComputeMetrics(sampleTable()).Row(1)
	assert.InDelta(t, 50.0, keeper.Float(ColCleanSheetRate), 1e-9)
	assert.InDelta(t, 0.0, keeper.Float(ColGoalsPer90), 1e-9)
}

func TestComputeMetrics_PreservesRowCount(t *testing.T) {
	tests := []struct {
		name string
		in   *Table
	}{
		{"empty", NewTable(RawColumns, nil, nil)},
		{"nil", nil},
		{"sample", sampleTable()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := ComputeMetrics(tc.in)
			assert.Equal(t, tc.in.Len(), out.Len())
			finite(t, out)
		})
	}
}

func TestComputeMetrics_NormalizationBounds(t *testing.T) {
	out := ComputeMetrics(sampleTable())

	for _, c := range out.Columns() {
		if IsNormColumn(c) {
			continue
		}
		top := ColumnMax(out, c)
		if top <= 0 {
			continue
		}
		hasNegative := false
		for _, v := range out.Column(c) {
			if v < 0 {
				hasNegative = true
			}
		}
		for _, r := range out.Rows() {
			n := r.Float(NormColumn(c))
			if !hasNegative {
				assert.GreaterOrEqual(t, n, 0.0, "%s %s", r.Name, c)
			}
			assert.LessOrEqual(t, n, 1.0, "%s %s", r.Name, c)
			if r.Float(c) == top {
				assert.Equal(t, 1.0, n, "%s %s", r.Name, c)
			}
		}
	}
}

func TestComputeMetrics_NormalizationDegenerate(t *testing.T) {
	raw := NewTable([]string{ColGoals, ColMinutes}, nil, []Record{
		row("A", "Arsenal", "FWD", map[string]float64{ColGoals: 0, ColMinutes: 90}),
		row("B", "Arsenal", "FWD", map[string]float64{ColGoals: 0, ColMinutes: 45}),
	})

	out := ComputeMetrics(raw)
	assert.Equal(t, []float64{0, 0}, out.Column(NormColumn(ColGoals)))
	assert.Equal(t, []float64{1, 0.5}, out.Column(NormColumn(ColMinutes)))
}

func TestComputeMetrics_NormalizationNegativeMax(t *testing.T) {
	raw := NewTable([]string{ColGoalsPrevented}, nil, []Record{
		row("A", "Arsenal", "GKP", map[string]float64{ColGoalsPrevented: -1.5}),
		row("B", "Chelsea", "GKP", map[string]float64{ColGoalsPrevented: -3}),
	})

	out := ComputeMetrics(raw)
	assert.Equal(t, []float64{0, 0}, out.Column(NormColumn(ColGoalsPrevented)))
}

func TestComputeMetrics_NormCompanionsForDerivedColumns(t *testing.T) {
	out := ComputeMetrics(sampleTable())

	derived := append([]string{ColForwardScore, ColMidfielderScore,
		ColDefenderScore, ColGoalkeeperScore, ColCardScore}, FeatureColumns...)
	for _, c := range derived {
		assert.True(t, out.HasColumn(c), c)
		assert.True(t, out.HasColumn(NormColumn(c)), NormColumn(c))
	}
	for _, c := range out.Columns() {
		assert.False(t, IsNormColumn(c) && IsNormColumn(c[:len(c)-len(NormSuffix)]), "double companion %s", c)
	}
	assert.False(t, out.HasColumn(NormColumn(ColClub)))
	assert.False(t, out.HasColumn(NormColumn(ColPlayerName)))
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	raw := sampleTable()
	first := ComputeMetrics(raw)
	second := ComputeMetrics(raw)
	again := ComputeMetrics(first)

	require.Equal(t, first.Columns(), second.Columns())
	require.Equal(t, first.Columns(), again.Columns())
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.Row(i).Values(), second.Row(i).Values())
		assert.Equal(t, first.Row(i).Values(), again.Row(i).Values())
	}
}

func TestComputeMetrics_DoesNotMutateInput(t *testing.T) {
	raw := sampleTable()
	before := raw.Row(0).Values()
	cols := raw.Columns()

	_ = ComputeMetrics(raw)

	assert.Equal(t, before, raw.Row(0).Values())
	assert.Equal(t, cols, raw.Columns())
	_, ok := raw.Row(0).Value(ColGoalsPer90)
	assert.False(t, ok)
}

func TestComputeMetrics_CardScore(t *testing.T) {
	raw := NewTable(RawColumns, nil, []Record{
		row("A", "Arsenal", "DEF", map[string]float64{ColYellowCards: 5, ColRedCards: 1}),
		row("B", "Arsenal", "DEF", map[string]float64{ColYellowCards: 3}),
	})
	out := ComputeMetrics(raw)
	assert.Equal(t, []float64{3.5, 1.5}, out.Column(ColCardScore))
}

func TestRecord_DropsNonFinite(t *testing.T) {
	r := NewRecord("A", "Arsenal", "FWD", map[string]float64{
		ColGoals:   math.NaN(),
		ColAssists: math.Inf(1),
		ColShots:   4,
	}, map[string]string{"Nationality": "England"})

	_, ok := r.Value(ColGoals)
	assert.False(t, ok)
	_, ok = r.Value(ColAssists)
	assert.False(t, ok)
	assert.Equal(t, 4.0, r.Float(ColShots))
	assert.Equal(t, "England", r.Text("Nationality"))
	assert.Equal(t, "Arsenal", r.Text(ColClub))
}
