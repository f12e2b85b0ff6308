// Package dataset loads the raw season table from the configured source,
// checks it, and runs it through the metrics engine.
package dataset

import (
	"fmt"
	"time"
)

// LoadResult tracks counts and non-fatal problems from a load.
type LoadResult struct {
	Source      string        `json:"source"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	TextColumns int           `json:"text_columns"`
	Clubs       int           `json:"clubs"`
	Duration    time.Duration `json:"duration_ns"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// AddWarning records a warning message.
func (r *LoadResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddWarningf records a formatted warning message.
func (r *LoadResult) AddWarningf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the load.
func (r *LoadResult) Summary() string {
	return fmt.Sprintf(
		"source=%s rows=%d columns=%d text_columns=%d clubs=%d warnings=%d",
		r.Source, r.Rows, r.Columns, r.TextColumns, r.Clubs, len(r.Warnings),
	)
}
