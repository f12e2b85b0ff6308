package metrics

// ColumnMax returns the largest value of col; missing cells read as 0.
// An empty table yields 0.
func ColumnMax(t *Table, col string) float64 {
	var top float64
	for i, r := range t.Rows() {
		v := r.Float(col)
		if i == 0 || v > top {
			top = v
		}
	}
	return top
}

// NormalizeValue divides v by the column maximum. A zero or negative
// maximum yields 0.
func NormalizeValue(v, top float64) float64 {
	if top <= 0 {
		return 0
	}
	return v / top
}

// Normalize adds a <col>_norm companion for every numeric column, scaled by
// that column's maximum over all rows. Existing companions are recomputed,
// never normalized a second time.
func Normalize(t *Table) *Table {
	var sources []string
	for _, c := range t.Columns() {
		if !IsNormColumn(c) {
			sources = append(sources, c)
		}
	}

	maxes := make(map[string]float64, len(sources))
	normCols := make([]string, len(sources))
	for i, c := range sources {
		maxes[c] = ColumnMax(t, c)
		normCols[i] = NormColumn(c)
	}

	cols := append(append([]string(nil), sources...), normCols...)
	return t.mapRows(cols, func(r Record) Record {
		norms := make(map[string]float64, len(sources))
		for _, c := range sources {
			norms[NormColumn(c)] = NormalizeValue(r.Float(c), maxes[c])
		}
		return r.with(norms, IsNormColumn)
	})
}
