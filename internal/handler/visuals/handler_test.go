package visuals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-gota/gota/dataframe"

	"github.com/tabwise/workbench/internal/model/dataset"
	visualsService "github.com/tabwise/workbench/internal/service/visuals"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

func setupRouter(t *testing.T, svc *visualsService.Service) (*chi.Mux, *dataset.MemoryStore) {
	t.Helper()
	store := dataset.NewMemoryStore(time.Minute, 4)
	t.Cleanup(store.Close)

	handler := New(store, svc)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func cachedDataset(t *testing.T, store *dataset.MemoryStore) *dataset.Dataset {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader("city,sales\nParis,10\nLondon,20\nRome,30\n"),
		dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		t.Fatalf("test frame: %v", df.Err)
	}
	ds := &dataset.Dataset{
		ID:         "sess-1",
		Filename:   "test.csv",
		UploadedAt: time.Now().UTC(),
		Frame:      df,
	}
	store.Put(ds)
	return ds
}

func TestVisualsUnknownSessionRedirects(t *testing.T) {
	r, _ := setupRouter(t, visualsService.NewService(&fakeCompleter{}, 3))

	req := httptest.NewRequest(http.MethodGet, "/ai_visuals/unknown", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
}

func TestVisualsAIDisabled(t *testing.T) {
	r, store := setupRouter(t, nil)
	ds := cachedDataset(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ai_visuals/"+ds.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestVisualsUnparsableCompletionIsSingleErrorPage(t *testing.T) {
	svc := visualsService.NewService(&fakeCompleter{reply: "this is not json"}, 3)
	r, store := setupRouter(t, svc)
	ds := cachedDataset(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ai_visuals/"+ds.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Error processing AI response.") {
		t.Fatal("expected top-level error page")
	}
	if !strings.Contains(body, "this is not json") {
		t.Fatal("error page should embed the raw completion")
	}
	if strings.Contains(body, "echarts") {
		t.Fatal("error page must not contain partial chart output")
	}
}

func TestVisualsMixedReport(t *testing.T) {
	svc := visualsService.NewService(&fakeCompleter{reply: `[
		{"title": "Sales by city", "code": "bar(\"city\", \"sales\")"},
		{"title": "Sales spread", "code": "histogram(\"sales\")"},
		{"title": "Broken chart", "code": "bar(\"nope\", \"sales\")"}
	]`}, 3)
	r, store := setupRouter(t, svc)
	ds := cachedDataset(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ai_visuals/"+ds.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"<h3>Sales by city</h3>",
		"<h3>Sales spread</h3>",
		"Error generating chart: Broken chart",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestVisualsCompletionFailure(t *testing.T) {
	svc := visualsService.NewService(&fakeCompleter{err: context.DeadlineExceeded}, 3)
	r, store := setupRouter(t, svc)
	ds := cachedDataset(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ai_visuals/"+ds.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}
