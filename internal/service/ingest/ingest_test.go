package ingest

import (
	"errors"
	"strings"
	"testing"
)

const dirtyCSV = `city,sales,notes
Paris,10,alpha
London,20,beta
Paris,10,alpha
Berlin,,gamma
Rome,30,delta
`

func TestFromCSVDropsMissingAndDuplicates(t *testing.T) {
	df, err := FromCSV(strings.NewReader(dirtyCSV))
	if err != nil {
		t.Fatalf("FromCSV err: %v", err)
	}

	if df.Nrow() != 3 {
		t.Fatalf("expected 3 rows after cleaning, got %d", df.Nrow())
	}

	seen := map[string]int{}
	for _, row := range df.Records()[1:] {
		key := strings.Join(row, ",")
		seen[key]++
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				t.Fatalf("row %v still has a missing value", row)
			}
		}
	}
	for key, n := range seen {
		if n > 1 {
			t.Fatalf("row %q appears %d times", key, n)
		}
	}
}

func TestFromCSVPreservesRowOrder(t *testing.T) {
	df, err := FromCSV(strings.NewReader(dirtyCSV))
	if err != nil {
		t.Fatalf("FromCSV err: %v", err)
	}

	got := df.Col("city").Records()
	want := []string{"Paris", "London", "Rome"}
	if len(got) != len(want) {
		t.Fatalf("unexpected cities: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestFromCSVDetectsTypes(t *testing.T) {
	df, err := FromCSV(strings.NewReader(dirtyCSV))
	if err != nil {
		t.Fatalf("FromCSV err: %v", err)
	}

	types := map[string]string{}
	for i, name := range df.Names() {
		types[name] = string(df.Types()[i])
	}

	if types["sales"] != "int" && types["sales"] != "float" {
		t.Fatalf("sales should be numeric, got %s", types["sales"])
	}
	if types["city"] != "string" {
		t.Fatalf("city should be string, got %s", types["city"])
	}
}

func TestFromCSVAllRowsDirty(t *testing.T) {
	csv := "a,b\n1,\n,2\n"
	if _, err := FromCSV(strings.NewReader(csv)); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}
