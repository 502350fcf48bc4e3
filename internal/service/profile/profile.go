// Package profile computes the statistical profile served by the report
// endpoint: an overview plus per-column statistics, numeric and
// categorical columns treated separately.
package profile

import (
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"github.com/tabwise/workbench/internal/model/dataset"
)

// NumericColumn holds descriptive statistics for one numeric column.
type NumericColumn struct {
	Name   string
	Type   string
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Q1     float64
	Q3     float64
}

// Bucket is one value frequency in a categorical column.
type Bucket struct {
	Value string
	Count int
}

// CategoricalColumn holds distinct counts and top frequencies for one
// non-numeric column.
type CategoricalColumn struct {
	Name     string
	Type     string
	Distinct int
	Top      []Bucket
}

// Report is the complete profile of one dataset.
type Report struct {
	Filename    string
	UploadedAt  time.Time
	Rows        int
	Cols        int
	Numeric     []NumericColumn
	Categorical []CategoricalColumn
}

const topBuckets = 5

// Build computes the profile for a dataset.
func Build(ds *dataset.Dataset) *Report {
	report := &Report{
		Filename:   ds.Filename,
		UploadedAt: ds.UploadedAt,
		Rows:       ds.RowCount(),
		Cols:       len(ds.Columns()),
	}

	names := ds.Frame.Names()
	types := ds.Frame.Types()
	for i, name := range names {
		if types[i] == series.Int || types[i] == series.Float {
			report.Numeric = append(report.Numeric, numericProfile(ds, name, types[i]))
		} else {
			report.Categorical = append(report.Categorical, categoricalProfile(ds, name, types[i]))
		}
	}
	return report
}

func numericProfile(ds *dataset.Dataset, name string, typ series.Type) NumericColumn {
	raw := ds.Frame.Col(name).Float()
	vals := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}

	col := NumericColumn{Name: name, Type: string(typ), Count: len(vals)}
	if len(vals) == 0 {
		return col
	}

	col.Mean, _ = stats.Mean(vals)
	col.Median, _ = stats.Median(vals)
	col.StdDev, _ = stats.StandardDeviation(vals)
	col.Min, _ = stats.Min(vals)
	col.Max, _ = stats.Max(vals)
	if quartiles, err := stats.Quartile(vals); err == nil {
		col.Q1 = quartiles.Q1
		col.Q3 = quartiles.Q3
	}
	return col
}

func categoricalProfile(ds *dataset.Dataset, name string, typ series.Type) CategoricalColumn {
	records := ds.Frame.Col(name).Records()

	counts := make(map[string]int, len(records))
	for _, v := range records {
		counts[v]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for v, n := range counts {
		buckets = append(buckets, Bucket{Value: v, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})

	col := CategoricalColumn{Name: name, Type: string(typ), Distinct: len(buckets)}
	if len(buckets) > topBuckets {
		buckets = buckets[:topBuckets]
	}
	col.Top = buckets
	return col
}
