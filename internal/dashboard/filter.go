// Package dashboard builds the view models of the season dashboard from an
// enriched metrics.Table. Every builder is a pure function of its inputs.
package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// Filter narrows the player table. Empty slices match everything.
type Filter struct {
	Clubs      []string `json:"clubs,omitempty"`
	Positions  []string `json:"positions,omitempty"`
	MinMinutes float64  `json:"min_minutes,omitempty"`
}

// Apply returns the rows whose club and position are selected and, when
// MinMinutes is positive, that played at least MinMinutes.
func (f Filter) Apply(t *metrics.Table) *metrics.Table {
	clubs := set(f.Clubs)
	positions := set(f.Positions)
	return t.Where(func(r metrics.Record) bool {
		if len(clubs) > 0 && !clubs[r.Club] {
			return false
		}
		if len(positions) > 0 && !positions[r.Position] {
			return false
		}
		if f.MinMinutes > 0 && r.Float(metrics.ColMinutes) < f.MinMinutes {
			return false
		}
		return true
	})
}

// Key is a stable string form of the filter, used in cache keys.
func (f Filter) Key() string {
	clubs := append([]string(nil), f.Clubs...)
	positions := append([]string(nil), f.Positions...)
	sort.Strings(clubs)
	sort.Strings(positions)
	return fmt.Sprintf("c=%s|p=%s|m=%g", strings.Join(clubs, ","), strings.Join(positions, ","), f.MinMinutes)
}

func set(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// clubColor returns the registry colour or the default grey.
func clubColor(club string) string {
	c, _ := config.ClubColor(club)
	return c
}

// Stat is a named value in a fixed display order.
type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func stats(r metrics.Record, cols []string) []Stat {
	out := make([]Stat, len(cols))
	for i, c := range cols {
		out[i] = Stat{Name: c, Value: r.Float(c)}
	}
	return out
}

// PositionCount is one slice of a position distribution.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// positionDistribution counts rows per position, most common first and
// ties by name.
func positionDistribution(t *metrics.Table) []PositionCount {
	counts := map[string]int{}
	for _, r := range t.Rows() {
		if r.Position != "" {
			counts[r.Position]++
		}
	}
	out := make([]PositionCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, PositionCount{Position: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Position < out[j].Position
	})
	return out
}

// Headline is a total with its per-player mean.
type Headline struct {
	Total     float64 `json:"total"`
	PerPlayer float64 `json:"per_player"`
}

func headline(t *metrics.Table, col string) Headline {
	s := metrics.Describe(t.Column(col))
	return Headline{Total: s.Sum, PerPlayer: s.Mean}
}
