// Package csvfile reads the season player-stats CSV into a metrics.Table.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josm18/EPL-2024-2025/internal/metrics"
	"github.com/josm18/EPL-2024-2025/internal/provider"
)

// ErrNoRows is returned when the file has a header but no player rows.
var ErrNoRows = errors.New("csv has no data rows")

// requiredColumns must be present in the header.
var requiredColumns = []string{metrics.ColPlayerName, metrics.ColClub, metrics.ColPosition}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*metrics.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load parses a season CSV. Every record must have as many fields as the
// header; a short or long row fails the whole load.
func Load(r io.Reader) (*metrics.Table, error) {
	rows, header, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return provider.ToTable(rows, header), nil
}

// ReadRows parses the CSV into canonical rows and returns the header.
func ReadRows(r io.Reader) ([]provider.Row, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("read header: empty file")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	for _, col := range requiredColumns {
		if idx(col) < 0 {
			return nil, nil, fmt.Errorf("required column %q missing", col)
		}
	}
	iName, iClub, iPos := idx(metrics.ColPlayerName), idx(metrics.ColClub), idx(metrics.ColPosition)

	var rows []provider.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}

		fields := make(map[string]interface{}, len(header))
		for i, h := range header {
			if i == iName || i == iClub || i == iPos || h == "" {
				continue
			}
			fields[h] = rec[i]
		}
		rows = append(rows, provider.Row{
			Name:     rec[iName],
			Club:     rec[iClub],
			Position: rec[iPos],
			Fields:   fields,
		})
	}
	return rows, header, nil
}
