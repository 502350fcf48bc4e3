package ai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tabwise/workbench/internal/model/dataset"
)

// The model is told exactly which helpers the evaluation environment
// exposes; anything outside this register fails at compile time and is
// reported back through the normal error channels.
const queryHelpers = "count(), columns(), head(n), mean(col), sum(col), " +
	"min(col), max(col), median(col), stddev(col), unique(col), " +
	"nunique(col), value_counts(col), corr(a, b)"

const chartHelpers = "bar(x, y), line(x, y), scatter(x, y), " +
	"pie(names, values), histogram(col)"

// VisualsPrompt asks for chart descriptors as strict JSON. The summary
// partitions columns by inferred type so the model can pick sensible axes.
func VisualsPrompt(ds *dataset.Dataset, chartCount int) string {
	summary := fmt.Sprintf(
		"Dataset has %d rows. Numerical columns: %v. Categorical columns: %v.",
		ds.RowCount(), ds.NumericColumns(), ds.CategoricalColumns(),
	)

	return fmt.Sprintf(
		"You are a visualization expert. Based on the dataset summary below, "+
			"provide a JSON list of %d objects. Each object must have 'title' "+
			"and 'code' keys, where 'code' is a single expression calling one "+
			"of these chart helpers: %s. Column arguments are double-quoted "+
			"column names. Respond with the JSON list only, no explanation, "+
			"no markdown. Dataset Summary: %s",
		chartCount, chartHelpers, summary,
	)
}

// ChatPrompt asks for a single-line expression answering the question.
func ChatPrompt(ds *dataset.Dataset, question string) string {
	return fmt.Sprintf(
		"You are a data analysis expert. Given a table named 'df' with "+
			"columns %v, write a single-line expression to answer: '%s'. "+
			"Available helpers: %s. The table handle also supports df.Rows(), "+
			"df.Cols(), df.Columns(), df.Column(name) and df.Head(n). Column "+
			"arguments are double-quoted column names. The expression's value "+
			"is the answer. No explanation. No markdown.",
		ds.Columns(), question, queryHelpers,
	)
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*")

// StripFences removes markdown code fences and surrounding whitespace from
// a raw completion. No further validation happens here.
func StripFences(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}
