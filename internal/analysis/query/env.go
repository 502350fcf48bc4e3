package query

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"
)

// ChatEnv builds the evaluation environment for chat questions: the table
// handle and the query helpers, nothing else.
func ChatEnv(df dataframe.DataFrame) map[string]any {
	t := NewTable(df)

	return map[string]any{
		"df": t,
		"count": func() int {
			return t.Rows()
		},
		"columns": func() []string {
			return t.Columns()
		},
		"head": func(n int) string {
			return t.Head(n)
		},
		"mean": func(col string) (float64, error) {
			return numericStat(t, col, stats.Mean)
		},
		"sum": func(col string) (float64, error) {
			return numericStat(t, col, stats.Sum)
		},
		"min": func(col string) (float64, error) {
			return numericStat(t, col, stats.Min)
		},
		"max": func(col string) (float64, error) {
			return numericStat(t, col, stats.Max)
		},
		"median": func(col string) (float64, error) {
			return numericStat(t, col, stats.Median)
		},
		"stddev": func(col string) (float64, error) {
			return numericStat(t, col, stats.StandardDeviation)
		},
		"unique": func(col string) ([]string, error) {
			return uniqueValues(t, col)
		},
		"nunique": func(col string) (int, error) {
			vals, err := uniqueValues(t, col)
			if err != nil {
				return 0, err
			}
			return len(vals), nil
		},
		"value_counts": func(col string) ([]ValueCount, error) {
			return valueCounts(t, col)
		},
		"corr": func(a, b string) (float64, error) {
			return correlation(t, a, b)
		},
	}
}

// ChartEnv extends ChatEnv with the chart helpers used by the
// visualization report.
func ChartEnv(df dataframe.DataFrame) map[string]any {
	t := NewTable(df)
	env := ChatEnv(df)

	env["bar"] = func(x, y string) (*Chart, error) {
		return barChart(t, x, y)
	}
	env["line"] = func(x, y string) (*Chart, error) {
		return lineChart(t, x, y)
	}
	env["scatter"] = func(x, y string) (*Chart, error) {
		return scatterChart(t, x, y)
	}
	env["pie"] = func(names, values string) (*Chart, error) {
		return pieChart(t, names, values)
	}
	env["histogram"] = func(col string) (*Chart, error) {
		return histogramChart(t, col)
	}
	return env
}

// ValueCount is one bucket of a value_counts result, ordered most
// frequent first.
type ValueCount struct {
	Value string
	Count int
}

func numericStat(t *Table, col string, fn func(stats.Float64Data) (float64, error)) (float64, error) {
	vals, err := t.numericColumn(col)
	if err != nil {
		return 0, err
	}
	return fn(vals)
}

func uniqueValues(t *Table, col string) ([]string, error) {
	records, err := t.stringColumn(col)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, v := range records {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func valueCounts(t *Table, col string) ([]ValueCount, error) {
	records, err := t.stringColumn(col)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(records))
	order := make([]string, 0, len(records))
	for _, v := range records {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]ValueCount, 0, len(order))
	for _, v := range order {
		out = append(out, ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

func correlation(t *Table, a, b string) (float64, error) {
	left, err := t.numericColumn(a)
	if err != nil {
		return 0, err
	}
	right, err := t.numericColumn(b)
	if err != nil {
		return 0, err
	}
	// Trim to equal length in case either column had NaN holes.
	if len(left) > len(right) {
		left = left[:len(right)]
	} else if len(right) > len(left) {
		right = right[:len(left)]
	}
	return stats.Correlation(left, right)
}
