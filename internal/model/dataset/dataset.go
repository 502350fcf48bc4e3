package dataset

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset is one uploaded, cleaned table cached under a session identifier.
type Dataset struct {
	ID         string
	Filename   string
	UploadedAt time.Time
	Frame      dataframe.DataFrame
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return d.Frame.Nrow()
}

// Columns returns the column names in table order.
func (d *Dataset) Columns() []string {
	return d.Frame.Names()
}

// NumericColumns returns the names of int and float typed columns.
func (d *Dataset) NumericColumns() []string {
	return d.columnsOfKind(true)
}

// CategoricalColumns returns the names of every non-numeric column.
func (d *Dataset) CategoricalColumns() []string {
	return d.columnsOfKind(false)
}

func (d *Dataset) columnsOfKind(numeric bool) []string {
	names := d.Frame.Names()
	types := d.Frame.Types()

	out := make([]string, 0, len(names))
	for i, name := range names {
		isNumeric := types[i] == series.Int || types[i] == series.Float
		if isNumeric == numeric {
			out = append(out, name)
		}
	}
	return out
}
