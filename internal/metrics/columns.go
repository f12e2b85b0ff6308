package metrics

import "strings"

// --------------------------------------------------------------------------
// Identity columns (always text)
// --------------------------------------------------------------------------

const (
	ColPlayerName = "Player Name"
	ColClub       = "Club"
	ColPosition   = "Position"
)

// --------------------------------------------------------------------------
// Raw columns: header names of the season CSV
// --------------------------------------------------------------------------

const (
	ColMinutes                = "Minutes"
	ColAppearances            = "Appearances"
	ColGoals                  = "Goals"
	ColAssists                = "Assists"
	ColShots                  = "Shots"
	ColShotsOnTarget          = "Shots On Target"
	ColPasses                 = "Passes"
	ColSuccessfulPasses       = "Successful Passes"
	ColPassesPct              = "Passes %"
	ColProgressiveCarries     = "Progressive Carries"
	ColSuccessfulFThirdPasses = "Successful fThird Passes"
	ColFThirdPasses           = "fThird Passes"
	ColFThirdPassesPct        = "fThird Passes %"
	ColThroughBalls           = "Through Balls"
	ColPossessionWon          = "Possession Won"
	ColDispossessed           = "Dispossessed"
	ColTackles                = "Tackles"
	ColInterceptions          = "Interceptions"
	ColBlocks                 = "Blocks"
	ColClearances             = "Clearances"
	ColCleanSheets            = "Clean Sheets"
	ColGroundDuels            = "Ground Duels"
	ColGroundDuelsWon         = "gDuels Won"
	ColGroundDuelsPct         = "gDuels %"
	ColAerialDuels            = "Aerial Duels"
	ColAerialDuelsWon         = "aDuels Won"
	ColAerialDuelsPct         = "aDuels %"
	ColConversionPct          = "Conversion %"
	ColBigChancesMissed       = "Big Chances Missed"
	ColHitWoodwork            = "Hit Woodwork"
	ColOffsides               = "Offsides"
	ColCrossesPct             = "Crosses %"
	ColOwnGoals               = "Own Goals"
	ColSaves                  = "Saves"
	ColSavesPct               = "Saves %"
	ColGoalsPrevented         = "Goals Prevented"
	ColHighClaims             = "High Claims"
	ColPenaltiesSaved         = "Penalties Saved"
	ColPunches                = "Punches"
	ColGoalsConceded          = "Goals Conceded"
	ColYellowCards            = "Yellow Cards"
	ColRedCards               = "Red Cards"
	ColCarriesEndedGoal       = "Carries Ended with Goal"
	ColCarriesEndedAssist     = "Carries Ended with Assist"
	ColCarriesEndedShot       = "Carries Ended with Shot"
)

// RawColumns lists the numeric columns a season file is expected to carry.
// Sources may provide more or fewer; missing ones read as zero downstream.
var RawColumns = []string{
	ColMinutes, ColAppearances, ColGoals, ColAssists, ColShots, ColShotsOnTarget,
	ColPasses, ColSuccessfulPasses, ColPassesPct, ColProgressiveCarries,
	ColSuccessfulFThirdPasses, ColFThirdPasses, ColFThirdPassesPct, ColThroughBalls,
	ColPossessionWon, ColDispossessed, ColTackles, ColInterceptions, ColBlocks,
	ColClearances, ColCleanSheets, ColGroundDuels, ColGroundDuelsWon, ColGroundDuelsPct,
	ColAerialDuels, ColAerialDuelsWon, ColAerialDuelsPct, ColConversionPct,
	ColBigChancesMissed, ColHitWoodwork, ColOffsides, ColCrossesPct, ColOwnGoals,
	ColSaves, ColSavesPct, ColGoalsPrevented, ColHighClaims, ColPenaltiesSaved,
	ColPunches, ColGoalsConceded, ColYellowCards, ColRedCards,
	ColCarriesEndedGoal, ColCarriesEndedAssist, ColCarriesEndedShot,
}

// --------------------------------------------------------------------------
// Derived columns
// --------------------------------------------------------------------------

const (
	ColMinutesPlayed      = "Minutes_Played"
	ColGoalContributions  = "Goal_Contributions"
	ColDefensiveActions   = "Defensive_Actions"
	ColProgressiveActions = "Progressive_Actions"
	ColGoalsPer90         = "Goals_per_90"
	ColAssistsPer90       = "Assists_per_90"
	ColGoalsAssistsPer90  = "G+A_per_90"
	ColProgressivePer90   = "Progressive_per_90"
	ColDefensivePer90     = "Defensive_per_90"
	ColShotAccuracy       = "Shot_Accuracy"
	ColDuelSuccessRate    = "Duel_Success_Rate"
	ColCleanSheetRate     = "Clean_Sheet_Rate"

	ColForwardScore    = "Forward_Score"
	ColMidfielderScore = "Midfielder_Score"
	ColDefenderScore   = "Defender_Score"
	ColGoalkeeperScore = "Goalkeeper_Score"
	ColCardScore       = "Card Score"
)

// FeatureColumns are produced by DeriveFeatures, in output order.
var FeatureColumns = []string{
	ColMinutesPlayed,
	ColGoalContributions, ColDefensiveActions, ColProgressiveActions,
	ColGoalsPer90, ColAssistsPer90, ColGoalsAssistsPer90,
	ColProgressivePer90, ColDefensivePer90,
	ColShotAccuracy, ColDuelSuccessRate, ColCleanSheetRate,
}

// NormSuffix marks a column-max normalized companion column.
const NormSuffix = "_norm"

// NormColumn returns the normalized companion name of col.
func NormColumn(col string) string {
	return col + NormSuffix
}

// IsNormColumn reports whether col is a normalized companion.
func IsNormColumn(col string) bool {
	return strings.HasSuffix(col, NormSuffix)
}

// IsIdentityColumn reports whether col is one of the text identity columns.
func IsIdentityColumn(col string) bool {
	return col == ColPlayerName || col == ColClub || col == ColPosition
}
