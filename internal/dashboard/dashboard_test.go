package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

func player(name, club, pos string, values map[string]float64) metrics.Record {
	return metrics.NewRecord(name, club, pos, values, nil)
}

// league is a small enriched two-club table.
func league() *metrics.Table {
	raw := metrics.NewTable(metrics.RawColumns, nil, []metrics.Record{
		player("Saka", "Arsenal", "MID", map[string]float64{
			metrics.ColMinutes: 2000, metrics.ColGoals: 6, metrics.ColAssists: 10,
			metrics.ColShots: 50, metrics.ColShotsOnTarget: 20, metrics.ColGoalsConceded: 20,
			metrics.ColTackles: 30, metrics.ColPasses: 1000, metrics.ColPassesPct: 80,
			metrics.ColSuccessfulPasses: 800, metrics.ColProgressiveCarries: 60, metrics.ColPossessionWon: 40,
		}),
		player("Raya", "Arsenal", "GKP", map[string]float64{
			metrics.ColMinutes: 3420, metrics.ColCleanSheets: 13, metrics.ColGoalsConceded: 34,
			metrics.ColSaves: 80, metrics.ColPasses: 900, metrics.ColPassesPct: 70,
			metrics.ColSuccessfulPasses: 630,
		}),
		player("Saliba", "Arsenal", "DEF", map[string]float64{
			metrics.ColMinutes: 3000, metrics.ColGoals: 2, metrics.ColTackles: 40,
			metrics.ColInterceptions: 30, metrics.ColCleanSheets: 13, metrics.ColGoalsConceded: 30,
			metrics.ColPasses: 2000, metrics.ColPassesPct: 90, metrics.ColSuccessfulPasses: 1800,
			metrics.ColPossessionWon: 50,
		}),
		player("Palmer", "Chelsea", "MID", map[string]float64{
			metrics.ColMinutes: 3000, metrics.ColGoals: 15, metrics.ColAssists: 8,
			metrics.ColShots: 100, metrics.ColShotsOnTarget: 40, metrics.ColPasses: 1200,
			metrics.ColPassesPct: 82, metrics.ColSuccessfulPasses: 984,
			metrics.ColProgressiveCarries: 90, metrics.ColPossessionWon: 20,
		}),
		player("Jackson", "Chelsea", "FWD", map[string]float64{
			metrics.ColMinutes: 2500, metrics.ColGoals: 14, metrics.ColAssists: 5,
			metrics.ColShots: 80, metrics.ColShotsOnTarget: 35, metrics.ColPasses: 400,
			metrics.ColPassesPct: 70, metrics.ColSuccessfulPasses: 280,
			metrics.ColProgressiveCarries: 30, metrics.ColPossessionWon: 10,
		}),
		player("Unused", "Chelsea", "FWD", map[string]float64{metrics.ColMinutes: 0}),
	})
	return metrics.ComputeMetrics(raw)
}

func names(t *metrics.Table) []string {
	var out []string
	for _, r := range t.Rows() {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tbl := league()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"Saka", "Raya", "Saliba", "Palmer", "Jackson", "Unused"}},
		{"club", Filter{Clubs: []string{"Arsenal"}}, []string{"Saka", "Raya", "Saliba"}},
		{"position", Filter{Positions: []string{"MID"}}, []string{"Saka", "Palmer"}},
		{"minutes inclusive", Filter{MinMinutes: 2500}, []string{"Raya", "Saliba", "Palmer", "Jackson"}},
		{"combined", Filter{Clubs: []string{"Chelsea"}, Positions: []string{"FWD"}, MinMinutes: 1}, []string{"Jackson"}},
		{"no match", Filter{Clubs: []string{"Everton"}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(tc.filter.Apply(tbl)))
		})
	}
}

func TestFilter_Key(t *testing.T) {
	a := Filter{Clubs: []string{"Chelsea", "Arsenal"}, MinMinutes: 90}
	b := Filter{Clubs: []string{"Arsenal", "Chelsea"}, MinMinutes: 90}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Filter{}.Key())
	// Key must not reorder the caller's slice.
	assert.Equal(t, "Chelsea", a.Clubs[0])
}

func TestBuildOverview(t *testing.T) {
	ov := BuildOverview(league())

	assert.Equal(t, 6, ov.Players)
	assert.Equal(t, 37.0, ov.Goals.Total)
	assert.InDelta(t, 37.0/6, ov.Goals.PerPlayer, 1e-12)
	assert.Equal(t, 23.0, ov.Assists.Total)
	assert.Equal(t, []PositionCount{
		{"FWD", 2}, {"MID", 2}, {"DEF", 1}, {"GKP", 1},
	}, ov.Positions)

	require.Len(t, ov.Teams, 2)
	ars, che := ov.Teams[0], ov.Teams[1]
	assert.Equal(t, "Arsenal", ars.Club)
	assert.Equal(t, "#EF0107", ars.Color)
	assert.Equal(t, 8.0, ars.Goals)
	assert.Equal(t, 84.0, ars.GoalsConceded)
	assert.InDelta(t, 16.0, ars.ConversionRate, 1e-12)
	assert.InDelta(t, 20.0/84*100, ars.DefensiveEfficiency, 1e-12)
	// Chelsea conceded nothing in this table: efficiency is guarded to 0.
	assert.Equal(t, 0.0, che.DefensiveEfficiency)

	require.Len(t, ov.BuildUp, 2)
	assert.InDelta(t, 1300.0, ov.BuildUp[0].Passes, 1e-9)
	assert.InDelta(t, 800.0, ov.BuildUp[1].Passes, 1e-9, "missing cells do not drag the mean")
}

func TestBuildOverview_Empty(t *testing.T) {
	ov := BuildOverview(Filter{Clubs: []string{"Everton"}}.Apply(league()))
	assert.Equal(t, 0, ov.Players)
	assert.Equal(t, 0.0, ov.Goals.PerPlayer)
	assert.Empty(t, ov.Teams)
}

func TestParseMetricSet(t *testing.T) {
	s, err := ParseMetricSet("Defensive")
	require.NoError(t, err)
	assert.Equal(t, SetDefensive, s)

	s, err = ParseMetricSet("")
	require.NoError(t, err)
	assert.Equal(t, SetOffensive, s)

	_, err = ParseMetricSet("goalkeeping")
	assert.Error(t, err)
}

func TestPlayerComparison(t *testing.T) {
	cmp, err := PlayerComparison(league(), []string{"Palmer", "Nobody", "Saka", "Palmer"}, SetOffensive)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nobody"}, cmp.Missing)
	require.Len(t, cmp.Players, 2)
	palmer, saka := cmp.Players[0], cmp.Players[1]
	assert.Equal(t, "Palmer", palmer.Name)
	assert.Equal(t, "#034694", palmer.Color)
	assert.Len(t, palmer.Radar, len(SetOffensive.RadarMetrics()))

	assert.Equal(t, metrics.ColGoals, palmer.Radar[0].Metric)
	assert.Equal(t, 15.0, palmer.Radar[0].Value)
	assert.Equal(t, 1.0, palmer.Radar[0].Relative)
	assert.InDelta(t, 0.4, saka.Radar[0].Relative, 1e-12)
	assert.Equal(t, metrics.ColMinutes, saka.Details[0].Name)
	assert.Equal(t, 2000.0, saka.Details[0].Value)
}

func TestPlayerComparison_Limits(t *testing.T) {
	tbl := league()

	_, err := PlayerComparison(tbl, nil, SetOffensive)
	assert.True(t, errors.Is(err, ErrNoPlayers))

	_, err = PlayerComparison(tbl, []string{"a", "b", "c", "d", "e", "f"}, SetOffensive)
	assert.True(t, errors.Is(err, ErrTooManyPlayers))

	cmp, err := PlayerComparison(tbl, []string{"Nobody"}, SetPossession)
	require.NoError(t, err)
	assert.Empty(t, cmp.Players)
	assert.Equal(t, SetPossession, cmp.Set)
}

func TestLeaders(t *testing.T) {
	tbl := league()

	top, err := Leaders(tbl, metrics.ColGoals, 2, false)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, Leader{Rank: 1, Name: "Palmer", Club: "Chelsea", Position: "MID", Value: 15}, top[0])
	assert.Equal(t, "Jackson", top[1].Name)

	bottom, err := Leaders(tbl, metrics.ColMinutes, 1, true)
	require.NoError(t, err)
	assert.Equal(t, "Unused", bottom[0].Name)

	_, err = Leaders(tbl, "Not A Column", 5, false)
	assert.Error(t, err)
}

func TestBuildTeamReport(t *testing.T) {
	rep, err := BuildTeamReport(league(), Filter{Clubs: []string{"Arsenal", "Atlantis"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Arsenal"}, rep.Clubs)
	assert.Equal(t, []string{"Atlantis"}, rep.Missing)
	assert.Equal(t, 3, rep.SquadSize)
	assert.Equal(t, 3, rep.ActivePlayers)
	assert.Equal(t, 8.0, rep.Goals.Total)
	assert.Len(t, rep.Minutes, 3)
	assert.LessOrEqual(t, len(rep.TopAttackers), 5)
	assert.Equal(t, 1, rep.TopDefenders[0].Rank)

	require.Len(t, rep.Details, 1)
	var cleanSheets float64
	for _, s := range rep.Details[0].Stats {
		if s.Name == metrics.ColCleanSheets {
			cleanSheets = s.Value
		}
	}
	assert.Equal(t, 13.0, cleanSheets, "only the goalkeeper's clean sheets count")

	require.Len(t, rep.Comparison.Attack, 1)
	assert.Equal(t, 16.0, rep.Comparison.Attack[0].ConversionRate)
	assert.Equal(t, 40.0, rep.Comparison.Attack[0].ShotAccuracy)

	require.Len(t, rep.Comparison.Defense, 1)
	tackles := rep.Comparison.Defense[0].Radar[0]
	assert.Equal(t, metrics.ColTackles, tackles.Metric)
	assert.InDelta(t, 35.0, tackles.Value, 1e-12)
	assert.True(t, tackles.Relative >= 0 && tackles.Relative <= 1)
}

func TestBuildTeamReport_Filters(t *testing.T) {
	tbl := league()

	rep, err := BuildTeamReport(tbl, Filter{Clubs: []string{"Chelsea"}, Positions: []string{"FWD"}})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.SquadSize)
	assert.Equal(t, 1, rep.ActivePlayers)

	rep, err = BuildTeamReport(tbl, Filter{Clubs: []string{"Atlantis"}})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.SquadSize)
	assert.Empty(t, rep.Details)

	_, err = BuildTeamReport(tbl, Filter{})
	assert.Error(t, err)

	_, err = BuildTeamReport(tbl, Filter{Clubs: []string{"a", "b", "c", "d", "e", "f"}})
	assert.Error(t, err)
}

func TestBuildPositionBreakdown(t *testing.T) {
	pb := BuildPositionBreakdown(league())

	require.Len(t, pb.Positions, 4)
	assert.Equal(t, "DEF", pb.Positions[0].Position)
	fwd := pb.Positions[1]
	assert.Equal(t, "FWD", fwd.Position)
	assert.Equal(t, 2, fwd.Players)
	assert.Equal(t, metrics.ColGoalsPer90, fwd.Stats[0].Name)
	// Jackson 14/2500*90 = 0.504 and Unused 0: mean 0.252, rounded.
	assert.Equal(t, 0.25, fwd.Stats[0].Value)

	assert.Equal(t, OffensiveMetrics, pb.Correlation.Columns)
	assert.Len(t, pb.Correlation.Values, len(OffensiveMetrics))
}

func TestBuildAdvanced(t *testing.T) {
	adv := BuildAdvanced(league())

	assert.Equal(t, CorrelationMetrics, adv.Correlation.Columns)
	require.Len(t, adv.Indices, 6)
	require.Len(t, adv.AttackLeaders, 6)
	assert.Equal(t, "Palmer", adv.AttackLeaders[0].Name)
	assert.Equal(t, "Saliba", adv.PossessionLeaders[0].Name)

	var sum float64
	for _, p := range adv.Indices {
		sum += p.AttackIndex
	}
	assert.InDelta(t, 0, sum, 1e-9, "z-scores are centred")

	require.Len(t, adv.TeamStyle, 2)
	assert.Equal(t, "Arsenal", adv.TeamStyle[0].Club)
	assert.Equal(t, metrics.ColPasses, adv.TeamStyle[0].Stats[0].Name)
	assert.InDelta(t, 1, adv.TeamStyle[0].Stats[0].Value, 1e-12)
	assert.InDelta(t, -1, adv.TeamStyle[1].Stats[0].Value, 1e-12)
}

func TestWithIndices_DoesNotMutate(t *testing.T) {
	tbl := league()
	out := WithIndices(tbl)

	assert.True(t, out.HasColumn(ColAttackIndex))
	assert.False(t, tbl.HasColumn(ColAttackIndex))
	assert.Equal(t, tbl.Len(), out.Len())
}
