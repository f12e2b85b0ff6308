package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// writeCSV writes t with the identity columns first, then text columns,
// then every numeric column in table order. Missing cells are empty.
func writeCSV(w io.Writer, t *metrics.Table) error {
	text := append([]string{metrics.ColPlayerName, metrics.ColClub, metrics.ColPosition}, t.TextColumns()...)
	numeric := t.Columns()

	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string(nil), text...), numeric...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(text)+len(numeric))
	for _, r := range t.Rows() {
		for i, c := range text {
			record[i] = r.Text(c)
		}
		for i, c := range numeric {
			record[len(text)+i] = ""
			if v, ok := r.Value(c); ok {
				record[len(text)+i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
