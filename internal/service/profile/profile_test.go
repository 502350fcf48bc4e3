package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/tabwise/workbench/internal/model/dataset"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(
		"city,sales\nParis,10\nLondon,20\nRome,30\nParis,40\n",
	), dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		t.Fatalf("test frame: %v", df.Err)
	}
	return &dataset.Dataset{
		ID:         "test",
		Filename:   "test.csv",
		UploadedAt: time.Now().UTC(),
		Frame:      df,
	}
}

func TestBuildOverview(t *testing.T) {
	report := Build(testDataset(t))

	if report.Rows != 4 || report.Cols != 2 {
		t.Fatalf("unexpected shape: %d rows, %d cols", report.Rows, report.Cols)
	}
	if len(report.Numeric) != 1 || len(report.Categorical) != 1 {
		t.Fatalf("unexpected column partition: %d numeric, %d categorical",
			len(report.Numeric), len(report.Categorical))
	}
}

func TestBuildNumericStats(t *testing.T) {
	report := Build(testDataset(t))

	col := report.Numeric[0]
	if col.Name != "sales" {
		t.Fatalf("unexpected numeric column: %s", col.Name)
	}
	if col.Count != 4 {
		t.Fatalf("unexpected count: %d", col.Count)
	}
	if col.Mean != 25 {
		t.Fatalf("unexpected mean: %g", col.Mean)
	}
	if col.Min != 10 || col.Max != 40 {
		t.Fatalf("unexpected range: %g to %g", col.Min, col.Max)
	}
}

func TestBuildCategoricalTopValues(t *testing.T) {
	report := Build(testDataset(t))

	col := report.Categorical[0]
	if col.Name != "city" {
		t.Fatalf("unexpected categorical column: %s", col.Name)
	}
	if col.Distinct != 3 {
		t.Fatalf("unexpected distinct count: %d", col.Distinct)
	}
	if len(col.Top) == 0 || col.Top[0].Value != "Paris" || col.Top[0].Count != 2 {
		t.Fatalf("expected Paris on top, got %+v", col.Top)
	}
}
