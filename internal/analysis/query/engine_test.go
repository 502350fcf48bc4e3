package query

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func testFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(
		"city,sales\nParis,10\nLondon,20\nRome,30\nParis,40\n",
	), dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		t.Fatalf("test frame: %v", df.Err)
	}
	return df
}

func TestEvaluateCount(t *testing.T) {
	out, err := Evaluate("count()", ChatEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if FormatValue(out) != "4" {
		t.Fatalf("expected 4, got %q", FormatValue(out))
	}
}

func TestEvaluateMean(t *testing.T) {
	out, err := Evaluate(`mean("sales")`, ChatEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if FormatValue(out) != "25" {
		t.Fatalf("expected 25, got %q", FormatValue(out))
	}
}

func TestEvaluateUnique(t *testing.T) {
	out, err := Evaluate(`unique("city")`, ChatEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if got := FormatValue(out); got != "Paris, London, Rome" {
		t.Fatalf("unexpected unique result: %q", got)
	}
}

func TestEvaluateValueCounts(t *testing.T) {
	out, err := Evaluate(`value_counts("city")`, ChatEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	got := FormatValue(out)
	if !strings.HasPrefix(got, "Paris: 2") {
		t.Fatalf("expected Paris first, got %q", got)
	}
}

func TestEvaluateTableHandle(t *testing.T) {
	out, err := Evaluate("df.Rows() * df.Cols()", ChatEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}
	if FormatValue(out) != "8" {
		t.Fatalf("expected 8, got %q", FormatValue(out))
	}
}

func TestEvaluateUnknownColumn(t *testing.T) {
	if _, err := Evaluate(`mean("nope")`, ChatEnv(testFrame(t))); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestEvaluateNonNumericColumn(t *testing.T) {
	_, err := Evaluate(`mean("city")`, ChatEnv(testFrame(t)))
	if err == nil {
		t.Fatal("expected error for non-numeric column")
	}
	if !strings.Contains(err.Error(), "not numeric") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateCompileError(t *testing.T) {
	if _, err := Evaluate("count(", ChatEnv(testFrame(t))); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestEvaluateUnknownIdentifier(t *testing.T) {
	if _, err := Evaluate("drop_table()", ChatEnv(testFrame(t))); err == nil {
		t.Fatal("expected error for unknown helper")
	}
}

func TestEvaluateEmptyExpression(t *testing.T) {
	if _, err := Evaluate("   ", ChatEnv(testFrame(t))); err == nil {
		t.Fatal("expected error for empty expression")
	}
}

func TestChartEnvBar(t *testing.T) {
	out, err := Evaluate(`bar("city", "sales")`, ChartEnv(testFrame(t)))
	if err != nil {
		t.Fatalf("Evaluate err: %v", err)
	}

	chart, ok := out.(*Chart)
	if !ok {
		t.Fatalf("expected *Chart, got %T", out)
	}
	if chart.Kind() != "bar" {
		t.Fatalf("unexpected chart kind: %s", chart.Kind())
	}

	snippet := chart.Snippet()
	if snippet.Element == "" || snippet.Script == "" {
		t.Fatal("expected non-empty chart snippet")
	}
}

func TestChartEnvHistogramRejectsCategorical(t *testing.T) {
	if _, err := Evaluate(`histogram("city")`, ChartEnv(testFrame(t))); err == nil {
		t.Fatal("expected error for categorical histogram")
	}
}

func TestFormatValueNil(t *testing.T) {
	if got := FormatValue(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
}

func TestFormatValueFloat(t *testing.T) {
	if got := FormatValue(12.5); got != "12.5" {
		t.Fatalf("unexpected float formatting: %q", got)
	}
}
