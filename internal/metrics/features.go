package metrics

// Per90 rescales a counting stat to a 90-minute rate. Non-positive minutes
// yield 0.
func Per90(num, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return num * 90 / minutes
}

// Ratio returns successes as a percentage of attempts. Non-positive attempts
// yield 0.
func Ratio(successes, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return successes / attempts * 100
}

// sum adds the named fields of r; missing fields count as 0.
func sum(r Record, cols ...string) float64 {
	var total float64
	for _, c := range cols {
		total += r.Float(c)
	}
	return total
}

// Features computes the per-90 and ratio fields of a single record.
func Features(r Record) map[string]float64 {
	minutes := r.Float(ColMinutes)
	contributions := sum(r, ColGoals, ColAssists)
	defensive := sum(r, ColTackles, ColInterceptions, ColClearances)
	progressive := sum(r, ColProgressiveCarries, ColSuccessfulFThirdPasses)

	return map[string]float64{
		ColMinutesPlayed:      minutes,
		ColGoalContributions:  contributions,
		ColDefensiveActions:   defensive,
		ColProgressiveActions: progressive,

		ColGoalsPer90:        Per90(r.Float(ColGoals), minutes),
		ColAssistsPer90:      Per90(r.Float(ColAssists), minutes),
		ColGoalsAssistsPer90: Per90(contributions, minutes),
		ColProgressivePer90:  Per90(progressive, minutes),
		ColDefensivePer90:    Per90(defensive, minutes),

		ColShotAccuracy: Ratio(r.Float(ColShotsOnTarget), r.Float(ColShots)),
		ColDuelSuccessRate: Ratio(
			sum(r, ColGroundDuelsWon, ColAerialDuelsWon),
			sum(r, ColGroundDuels, ColAerialDuels),
		),
		ColCleanSheetRate: Ratio(r.Float(ColCleanSheets), r.Float(ColAppearances)),
	}
}

// DeriveFeatures adds FeatureColumns to every row.
func DeriveFeatures(t *Table) *Table {
	cols := appendMissing(t.Columns(), FeatureColumns...)
	return t.mapRows(cols, func(r Record) Record {
		return r.with(Features(r), nil)
	})
}
