// Package metrics is the season statistics engine. It turns raw per-player
// counting stats into per-90 rates, role scores and column-max normalized
// companions, and provides the group/rank/z-score helpers the dashboard
// composes on top of the enriched table.
//
// Records and tables are immutable once built: every stage returns a new
// Table and never writes into its input.
package metrics

import (
	"encoding/json"
	"math"
	"sort"
)

// Record is one player-season row.
type Record struct {
	Name     string
	Club     string
	Position string

	values map[string]float64
	text   map[string]string
}

// NewRecord builds a record from identity fields, numeric values and extra
// text attributes. The maps are copied. Non-finite values are dropped and
// read back as missing.
func NewRecord(name, club, position string, values map[string]float64, text map[string]string) Record {
	r := Record{
		Name:     name,
		Club:     club,
		Position: position,
		values:   make(map[string]float64, len(values)),
	}
	for k, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		r.values[k] = v
	}
	if len(text) > 0 {
		r.text = make(map[string]string, len(text))
		for k, v := range text {
			r.text[k] = v
		}
	}
	return r
}

// Value looks up a numeric field. ok is false when the field is absent or
// was not numeric in the source.
func (r Record) Value(col string) (v float64, ok bool) {
	v, ok = r.values[col]
	return v, ok
}

// Float returns a numeric field, or 0 when it is missing.
func (r Record) Float(col string) float64 {
	return r.values[col]
}

// Text returns a text field. Identity columns resolve to the identity fields.
func (r Record) Text(col string) string {
	switch col {
	case ColPlayerName:
		return r.Name
	case ColClub:
		return r.Club
	case ColPosition:
		return r.Position
	}
	return r.text[col]
}

// Values returns a copy of the numeric fields.
func (r Record) Values() map[string]float64 {
	out := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// with returns a copy of r with extra values set and the named columns removed.
func (r Record) with(set map[string]float64, drop func(string) bool) Record {
	values := make(map[string]float64, len(r.values)+len(set))
	for k, v := range r.values {
		if drop != nil && drop(k) {
			continue
		}
		values[k] = v
	}
	for k, v := range set {
		values[k] = v
	}
	out := r
	out.values = values
	return out
}

// MarshalJSON flattens the record into a single object keyed by column name.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.values)+len(r.text)+3)
	for k, v := range r.text {
		m[k] = v
	}
	for k, v := range r.values {
		m[k] = v
	}
	m[ColPlayerName] = r.Name
	m[ColClub] = r.Club
	m[ColPosition] = r.Position
	return json.Marshal(m)
}

// Table is an ordered collection of records with a known numeric column set.
type Table struct {
	columns     []string
	textColumns []string
	rows        []Record
}

// NewTable builds a table. columns lists the numeric columns in display order;
// textColumns lists extra non-identity text columns.
func NewTable(columns, textColumns []string, rows []Record) *Table {
	return &Table{
		columns:     append([]string(nil), columns...),
		textColumns: append([]string(nil), textColumns...),
		rows:        append([]Record(nil), rows...),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the records in order.
func (t *Table) Rows() []Record {
	if t == nil {
		return nil
	}
	return append([]Record(nil), t.rows...)
}

// Row returns the i-th record.
func (t *Table) Row(i int) Record {
	return t.rows[i]
}

// Columns returns the numeric columns in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

// TextColumns returns the extra text columns in order.
func (t *Table) TextColumns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.textColumns...)
}

// HasColumn reports whether col is a numeric column of t.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Column returns the values of col for every row; missing cells read as 0.
func (t *Table) Column(col string) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = t.rows[i].Float(col)
	}
	return out
}

// Where returns a new table holding the rows matching pred, in order.
func (t *Table) Where(pred func(Record) bool) *Table {
	out := &Table{columns: t.Columns(), textColumns: t.TextColumns()}
	for _, r := range t.Rows() {
		if pred(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Distinct returns the sorted distinct non-empty values of a text column.
func (t *Table) Distinct(col string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows() {
		v := r.Text(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// mapRows applies fn to every row and returns a table with the given columns.
func (t *Table) mapRows(columns []string, fn func(Record) Record) *Table {
	out := &Table{
		columns:     columns,
		textColumns: t.TextColumns(),
		rows:        make([]Record, t.Len()),
	}
	for i := range out.rows {
		out.rows[i] = fn(t.rows[i])
	}
	return out
}

// appendMissing appends the columns of extra not yet present in cols.
func appendMissing(cols []string, extra ...string) []string {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	out := append([]string(nil), cols...)
	for _, c := range extra {
		if !have[c] {
			have[c] = true
			out = append(out, c)
		}
	}
	return out
}
