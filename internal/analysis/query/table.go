// Package query evaluates model-generated expressions against an uploaded
// table. The environment exposes a table handle plus a fixed set of query
// and chart helpers; everything else is rejected at compile time. The
// expression itself runs as-is, which is the deliberate contract of the
// chat and visualization endpoints.
package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the handle exposed to expressions as `df`.
type Table struct {
	frame dataframe.DataFrame
}

// NewTable wraps a dataframe for evaluation.
func NewTable(df dataframe.DataFrame) *Table {
	return &Table{frame: df}
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return t.frame.Nrow()
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.frame.Ncol()
}

// Columns returns the column names.
func (t *Table) Columns() []string {
	return t.frame.Names()
}

// Column returns a column's values rendered as strings.
func (t *Table) Column(name string) ([]string, error) {
	col := t.frame.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return col.Records(), nil
}

// Head renders the first n rows as aligned text.
func (t *Table) Head(n int) string {
	records := t.frame.Records()
	if n < 0 {
		n = 0
	}
	if n > len(records)-1 {
		n = len(records) - 1
	}

	var b strings.Builder
	for i, row := range records[:n+1] {
		b.WriteString(strings.Join(row, " | "))
		if i == 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("-", len(strings.Join(row, " | "))))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Table) numericColumn(name string) ([]float64, error) {
	col := t.frame.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if typ := col.Type(); typ != series.Int && typ != series.Float {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}

	raw := col.Float()
	vals := make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", name)
	}
	return vals, nil
}

func (t *Table) stringColumn(name string) ([]string, error) {
	col := t.frame.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return col.Records(), nil
}
