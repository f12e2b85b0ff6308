package metrics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrZeroVariance is returned by ZScore when every value is identical.
var ErrZeroVariance = errors.New("metrics: zero variance")

// --------------------------------------------------------------------------
// Group-by
// --------------------------------------------------------------------------

// Op is an aggregation applied to one column within a group.
type Op int

const (
	OpSum Op = iota
	OpMean
	OpCount
)

func (o Op) String() string {
	switch o {
	case OpSum:
		return "sum"
	case OpMean:
		return "mean"
	case OpCount:
		return "count"
	}
	return "unknown"
}

// Agg names an aggregation. The result is stored under As, or Column when
// As is empty.
type Agg struct {
	Column string
	Op     Op
	As     string
}

func (a Agg) key() string {
	if a.As != "" {
		return a.As
	}
	return a.Column
}

// Sum, Mean and Count are shorthand constructors for Agg.
func Sum(col string) Agg { return Agg{Column: col, Op: OpSum} }
func Mean(col string) Agg { return Agg{Column: col, Op: OpMean} }
func Count(col string) Agg { return Agg{Column: col, Op: OpCount} }

// Group holds the aggregated values of one group.
type Group struct {
	Key    string             `json:"key"`
	Rows   int                `json:"rows"`
	Values map[string]float64 `json:"values"`
}

// Groups is sorted by Key.
type Groups []Group

// Get returns the group with the given key.
func (g Groups) Get(key string) (Group, bool) {
	i := sort.Search(len(g), func(i int) bool { return g[i].Key >= key })
	if i < len(g) && g[i].Key == key {
		return g[i], true
	}
	return Group{}, false
}

// Keys returns the group keys in order.
func (g Groups) Keys() []string {
	out := make([]string, len(g))
	for i := range g {
		out[i] = g[i].Key
	}
	return out
}

// Column returns one aggregated value per group, in group order.
func (g Groups) Column(name string) []float64 {
	out := make([]float64, len(g))
	for i := range g {
		out[i] = g[i].Values[name]
	}
	return out
}

// Aggregate groups rows by the text column groupKey and applies aggs to each
// group. Rows with an empty key are skipped. Sums treat missing cells as 0;
// means and counts only consider present cells, and a mean over no present
// cells is 0.
func Aggregate(t *Table, groupKey string, aggs ...Agg) Groups {
	type acc struct {
		rows   int
		sums   map[string]float64
		counts map[string]int
	}
	byKey := make(map[string]*acc)
	for _, r := range t.Rows() {
		k := r.Text(groupKey)
		if k == "" {
			continue
		}
		a, ok := byKey[k]
		if !ok {
			a = &acc{sums: make(map[string]float64), counts: make(map[string]int)}
			byKey[k] = a
		}
		a.rows++
		for _, agg := range aggs {
			if v, ok := r.Value(agg.Column); ok {
				a.sums[agg.Column] += v
				a.counts[agg.Column]++
			}
		}
	}

	out := make(Groups, 0, len(byKey))
	for k, a := range byKey {
		g := Group{Key: k, Rows: a.rows, Values: make(map[string]float64, len(aggs))}
		for _, agg := range aggs {
			switch agg.Op {
			case OpSum:
				g.Values[agg.key()] = a.sums[agg.Column]
			case OpMean:
				if n := a.counts[agg.Column]; n > 0 {
					g.Values[agg.key()] = a.sums[agg.Column] / float64(n)
				} else {
					g.Values[agg.key()] = 0
				}
			case OpCount:
				g.Values[agg.key()] = float64(a.counts[agg.Column])
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// GroupByMean returns the per-group mean of each value column.
func GroupByMean(t *Table, groupKey string, cols ...string) Groups {
	aggs := make([]Agg, len(cols))
	for i, c := range cols {
		aggs[i] = Mean(c)
	}
	return Aggregate(t, groupKey, aggs...)
}

// GroupBySum returns the per-group sum of each value column.
func GroupBySum(t *Table, groupKey string, cols ...string) Groups {
	aggs := make([]Agg, len(cols))
	for i, c := range cols {
		aggs[i] = Sum(c)
	}
	return Aggregate(t, groupKey, aggs...)
}

// --------------------------------------------------------------------------
// Ranking
// --------------------------------------------------------------------------

// TopN returns up to n rows ordered by col, descending unless ascending is
// set. Ties keep table order. Rows without a value for col sort last.
func TopN(t *Table, col string, n int, ascending bool) []Record {
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := rows[i].Value(col)
		vj, okj := rows[j].Value(col)
		if oki != okj {
			return oki
		}
		if ascending {
			return vi < vj
		}
		return vi > vj
	})
	if n < 0 {
		n = 0
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// --------------------------------------------------------------------------
// Distribution helpers
// --------------------------------------------------------------------------

// ZScore standardizes values with the population standard deviation. When
// every value is identical it returns an all-zero slice and ErrZeroVariance.
func ZScore(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	if constant(values) {
		return out, ErrZeroVariance
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return out, ErrZeroVariance
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out, nil
}

// MeanZScore averages the z-scores of several equally long columns. A
// zero-variance column contributes zeros.
func MeanZScore(columns ...[]float64) []float64 {
	if len(columns) == 0 {
		return nil
	}
	out := make([]float64, len(columns[0]))
	for _, col := range columns {
		z, _ := ZScore(col)
		for i := range out {
			if i < len(z) {
				out[i] += z[i]
			}
		}
	}
	for i := range out {
		out[i] /= float64(len(columns))
	}
	return out
}

// Summary describes a column.
type Summary struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// Describe returns count, sum, mean and sample standard deviation. The
// standard deviation of fewer than two values is 0.
func Describe(values []float64) Summary {
	s := Summary{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	for _, v := range values {
		s.Sum += v
	}
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}

// Matrix is a square correlation matrix over Columns.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Correlation returns the Pearson correlation matrix of cols. Pairs involving
// a constant column are 0, including the diagonal entry of that column.
func Correlation(t *Table, cols ...string) Matrix {
	data := make([][]float64, len(cols))
	flat := make([]bool, len(cols))
	for i, c := range cols {
		data[i] = t.Column(c)
		flat[i] = len(data[i]) < 2 || constant(data[i])
	}

	m := Matrix{Columns: append([]string(nil), cols...), Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			var r float64
			switch {
			case flat[i] || flat[j]:
				r = 0
			case i == j:
				r = 1
			default:
				r = stat.Correlation(data[i], data[j], nil)
				if math.IsNaN(r) {
					r = 0
				}
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func constant(values []float64) bool {
	if len(values) < 2 {
		return true
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
