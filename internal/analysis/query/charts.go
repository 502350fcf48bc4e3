package query

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

const (
	chartWidth  = "760px"
	chartHeight = "420px"
)

// Chart is the renderable value a visualization expression must produce.
type Chart struct {
	kind     string
	renderer render.Renderer
}

// Kind names the chart type (bar, line, scatter, pie, histogram).
func (c *Chart) Kind() string {
	return c.kind
}

// Snippet serializes the chart to embeddable markup.
func (c *Chart) Snippet() render.ChartSnippet {
	return c.renderer.RenderSnippet()
}

func sizeOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  chartWidth,
		Height: chartHeight,
	})
}

// barChart sums y per distinct x value, in first-appearance order.
func barChart(t *Table, x, y string) (*Chart, error) {
	labels, sums, err := groupSum(t, x, y)
	if err != nil {
		return nil, err
	}

	data := make([]opts.BarData, len(sums))
	for i, v := range sums {
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(sizeOpts())
	bar.SetXAxis(labels).AddSeries(y, data)
	return &Chart{kind: "bar", renderer: bar.Renderer}, nil
}

func lineChart(t *Table, x, y string) (*Chart, error) {
	labels, err := t.stringColumn(x)
	if err != nil {
		return nil, err
	}
	vals, err := t.numericColumn(y)
	if err != nil {
		return nil, err
	}
	if len(labels) > len(vals) {
		labels = labels[:len(vals)]
	}

	data := make([]opts.LineData, len(vals))
	for i, v := range vals {
		data[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(sizeOpts())
	line.SetXAxis(labels).AddSeries(y, data)
	return &Chart{kind: "line", renderer: line.Renderer}, nil
}

func scatterChart(t *Table, x, y string) (*Chart, error) {
	labels, err := t.stringColumn(x)
	if err != nil {
		return nil, err
	}
	vals, err := t.numericColumn(y)
	if err != nil {
		return nil, err
	}
	if len(labels) > len(vals) {
		labels = labels[:len(vals)]
	}

	data := make([]opts.ScatterData, len(vals))
	for i, v := range vals {
		data[i] = opts.ScatterData{Value: v}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(sizeOpts())
	scatter.SetXAxis(labels).AddSeries(y, data)
	return &Chart{kind: "scatter", renderer: scatter.Renderer}, nil
}

// pieChart sums values per distinct name.
func pieChart(t *Table, names, values string) (*Chart, error) {
	labels, sums, err := groupSum(t, names, values)
	if err != nil {
		return nil, err
	}

	data := make([]opts.PieData, len(labels))
	for i, label := range labels {
		data[i] = opts.PieData{Name: label, Value: sums[i]}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(sizeOpts())
	pie.AddSeries(values, data)
	return &Chart{kind: "pie", renderer: pie.Renderer}, nil
}

// histogramChart bins a numeric column into 10 equal-width buckets.
func histogramChart(t *Table, col string) (*Chart, error) {
	vals, err := t.numericColumn(col)
	if err != nil {
		return nil, err
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	const bins = 10
	width := (hi - lo) / bins
	if width == 0 {
		width = 1
	}

	counts := make([]int, bins)
	for _, v := range vals {
		idx := int(math.Floor((v - lo) / width))
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	data := make([]opts.BarData, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.4g to %.4g", lo+float64(i)*width, lo+float64(i+1)*width)
		data[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(sizeOpts())
	bar.SetXAxis(labels).AddSeries(col, data)
	return &Chart{kind: "histogram", renderer: bar.Renderer}, nil
}

func groupSum(t *Table, keyCol, valCol string) ([]string, []float64, error) {
	keys, err := t.stringColumn(keyCol)
	if err != nil {
		return nil, nil, err
	}
	col := t.frame.Col(valCol)
	if col.Err != nil {
		return nil, nil, fmt.Errorf("unknown column %q", valCol)
	}
	vals := col.Float()

	order := make([]string, 0, len(keys))
	sums := make(map[string]float64, len(keys))
	for i, k := range keys {
		if i >= len(vals) || math.IsNaN(vals[i]) {
			continue
		}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += vals[i]
	}
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("column %q is not numeric", valCol)
	}

	out := make([]float64, len(order))
	for i, k := range order {
		out[i] = sums[k]
	}
	return order, out, nil
}
