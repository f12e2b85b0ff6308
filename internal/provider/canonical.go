// Package provider defines the canonical row shape every stats source
// normalizes into. Sources (CSV file, Postgres) output Rows; ToTable turns
// them into the engine's metrics.Table.
//
// Adding a new source means implementing a function that returns []Row.
// The metrics engine and the dashboard never change.
package provider

import (
	"sort"
	"strings"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// Row is one player-season as read from a source, before numeric coercion.
// Fields is keyed by column name and excludes the identity columns.
type Row struct {
	Name     string                 `json:"name"`
	Club     string                 `json:"club"`
	Position string                 `json:"position"`
	Fields   map[string]interface{} `json:"fields"`
}

// clubAliases maps short or legacy club names to the registry spelling.
var clubAliases = map[string]string{
	"Brighton":          "Brighton & Hove Albion",
	"Spurs":             "Tottenham Hotspur",
	"Tottenham":         "Tottenham Hotspur",
	"Man City":          "Manchester City",
	"Man Utd":           "Manchester United",
	"Newcastle":         "Newcastle United",
	"Nott'm Forest":     "Nottingham Forest",
	"West Ham":          "West Ham United",
	"Wolves":            "Wolverhampton Wanderers",
	"Ipswich":           "Ipswich Town",
	"Leicester":         "Leicester City",
	"AFC Bournemouth":   "Bournemouth",
	"Brighton and Hove": "Brighton & Hove Albion",
}

// CanonicalClub trims a club name and resolves known aliases.
func CanonicalClub(name string) string {
	name = strings.TrimSpace(name)
	if alias, ok := clubAliases[name]; ok {
		return alias
	}
	return name
}

// CanonicalPosition upper-cases a position code ("fwd" -> "FWD").
func CanonicalPosition(pos string) string {
	return strings.ToUpper(strings.TrimSpace(pos))
}

// --------------------------------------------------------------------------
// Stat key mapping: snake_case keys stored in JSONB to CSV column names
// --------------------------------------------------------------------------

// statKeyOverrides covers keys that do not follow the generated snake_case
// form of the CSV header.
var statKeyOverrides = map[string]string{
	"minutes_played":    metrics.ColMinutes,
	"appearances_total": metrics.ColAppearances,
	"accurate_passes":   metrics.ColSuccessfulPasses,
	"passes_total":      metrics.ColPasses,
	"shots_total":       metrics.ColShots,
	"yellowcards":       metrics.ColYellowCards,
	"redcards":          metrics.ColRedCards,
	"cleansheets":       metrics.ColCleanSheets,
	"goals_conceded":    metrics.ColGoalsConceded,
	"ground_duels_won":  metrics.ColGroundDuelsWon,
	"aerial_duels_won":  metrics.ColAerialDuelsWon,
}

var statKeyColumns = buildStatKeyColumns()

func buildStatKeyColumns() map[string]string {
	m := make(map[string]string, len(metrics.RawColumns)+len(statKeyOverrides))
	for _, col := range metrics.RawColumns {
		m[StatKey(col)] = col
	}
	for k, v := range statKeyOverrides {
		m[k] = v
	}
	return m
}

// StatKey converts a column header to its snake_case stat key
// ("Shots On Target" -> "shots_on_target", "Passes %" -> "passes_pct").
func StatKey(column string) string {
	s := strings.ToLower(strings.TrimSpace(column))
	s = strings.ReplaceAll(s, "%", "pct")
	s = strings.ReplaceAll(s, "+", "_plus_")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "_")
}

// ColumnForStatKey maps a stat key to its column name. Unknown keys are
// returned unchanged so extra stats still reach the table.
func ColumnForStatKey(key string) string {
	if col, ok := statKeyColumns[strings.ToLower(key)]; ok {
		return col
	}
	return key
}

// --------------------------------------------------------------------------
// Table building
// --------------------------------------------------------------------------

// ToTable coerces rows into a metrics.Table.
//
// Known raw columns are always numeric; a cell that does not parse is left
// missing. Any other column is numeric only if every non-blank cell parses,
// and is kept as text otherwise. order fixes the column order (e.g. the CSV
// header); columns not in order follow alphabetically.
func ToTable(rows []Row, order []string) *metrics.Table {
	seen := map[string]bool{}
	var columns []string
	for _, c := range order {
		if !metrics.IsIdentityColumn(c) && !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}
	var extra []string
	for _, r := range rows {
		for c := range r.Fields {
			if !metrics.IsIdentityColumn(c) && !seen[c] {
				seen[c] = true
				extra = append(extra, c)
			}
		}
	}
	sort.Strings(extra)
	columns = append(columns, extra...)

	known := make(map[string]bool, len(metrics.RawColumns))
	for _, c := range metrics.RawColumns {
		known[c] = true
	}

	var numeric, text []string
	isNumeric := make(map[string]bool, len(columns))
	for _, c := range columns {
		if known[c] || numericColumn(rows, c) {
			isNumeric[c] = true
			numeric = append(numeric, c)
		} else {
			text = append(text, c)
		}
	}

	records := make([]metrics.Record, 0, len(rows))
	for _, r := range rows {
		values := make(map[string]float64, len(numeric))
		labels := map[string]string{}
		for c, raw := range r.Fields {
			if metrics.IsIdentityColumn(c) {
				continue
			}
			if isNumeric[c] {
				if v, ok := ExtractValue(raw); ok {
					values[c] = v
				}
				continue
			}
			if s, ok := raw.(string); ok {
				labels[c] = strings.TrimSpace(s)
			}
		}
		records = append(records, metrics.NewRecord(
			strings.TrimSpace(r.Name),
			CanonicalClub(r.Club),
			CanonicalPosition(r.Position),
			values, labels,
		))
	}
	return metrics.NewTable(numeric, text, records)
}

// numericColumn reports whether col has at least one non-blank cell and all
// non-blank cells parse as numbers.
func numericColumn(rows []Row, col string) bool {
	found := false
	for _, r := range rows {
		v, exists := r.Fields[col]
		if !exists || IsBlank(v) {
			continue
		}
		if _, ok := ExtractValue(v); !ok {
			return false
		}
		found = true
	}
	return found
}
