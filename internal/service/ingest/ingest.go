// Package ingest turns an uploaded CSV into a cleaned dataframe: rows with
// missing values are dropped, exact duplicate rows are dropped, and column
// types are re-detected on the surviving rows.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrNoRows reports a CSV with no data rows left after cleaning.
var ErrNoRows = errors.New("dataset has no rows after cleaning")

// FromCSV parses and cleans a CSV stream.
func FromCSV(r io.Reader) (dataframe.DataFrame, error) {
	// First pass reads everything as strings so cleaning sees the raw cells.
	raw := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if raw.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", raw.Err)
	}

	records := raw.Records()
	if len(records) < 2 {
		return dataframe.DataFrame{}, ErrNoRows
	}

	cleaned := make([][]string, 0, len(records))
	cleaned = append(cleaned, records[0])

	seen := make(map[string]struct{}, len(records)-1)
	for _, row := range records[1:] {
		if hasMissing(row) {
			continue
		}
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, row)
	}

	if len(cleaned) < 2 {
		return dataframe.DataFrame{}, ErrNoRows
	}

	df := dataframe.LoadRecords(cleaned,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load records: %w", df.Err)
	}
	return df, nil
}

func hasMissing(row []string) bool {
	for _, cell := range row {
		switch strings.TrimSpace(cell) {
		case "", "NA", "N/A", "NaN", "nan", "null", "NULL":
			return true
		}
	}
	return false
}
