package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/battyone/beyond-correlation/adapters/rforest"
	"github.com/battyone/beyond-correlation/app"
)

func newTestApp() *App {
	service := app.NewDiscoveryService(rforest.NewFactory(), nil, nil)
	return NewApp(service)
}

// multipartUpload builds a discover request carrying a small CSV dataset
func multipartUpload(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "data.csv")
	if err != nil {
		t.Fatal(err)
	}
	csv := "a,b,c\n"
	for i := 0; i < 10; i++ {
		csv += strings.Join([]string{"1", strconv.Itoa(i), strconv.Itoa(i * 2)}, ",") + "\n"
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/discover", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestDiscoverEndpoint(t *testing.T) {
	req := multipartUpload(t, map[string]string{
		"method": "pearson",
	})
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var run struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Method string `json:"method"`
		Result struct {
			Scores []struct {
				Feature string   `json:"feature"`
				Target  string   `json:"target"`
				Score   *float64 `json:"score"`
			} `json:"scores"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.Source != "data.csv" || run.Method != "pearson" {
		t.Errorf("run header: %+v", run)
	}
	if len(run.Result.Scores) != 6 {
		t.Errorf("got %d pairs, want 6", len(run.Result.Scores))
	}
	for _, s := range run.Result.Scores {
		if s.Feature == s.Target {
			t.Errorf("self pair in response: %s", s.Feature)
		}
	}
}

func TestDiscoverEndpointRFWithDiagnostics(t *testing.T) {
	req := multipartUpload(t, map[string]string{
		"method":                 "rf",
		"seed":                   "42",
		"include_na_information": "true",
	})
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var run struct {
		Seed   *int64 `json:"seed"`
		Result struct {
			NaNInfo []struct {
				NDropped int `json:"n_dropped"`
			} `json:"nan_info"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.Seed == nil || *run.Seed != 42 {
		t.Error("seed not echoed")
	}
	if len(run.Result.NaNInfo) != 6 {
		t.Errorf("nan info entries = %d, want 6", len(run.Result.NaNInfo))
	}
}

func TestDiscoverEndpointRejectsUnknownMethod(t *testing.T) {
	req := multipartUpload(t, map[string]string{"method": "mutual_information"})
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pearson") {
		t.Errorf("error should list supported methods: %s", rec.Body.String())
	}
}

func TestDiscoverEndpointRequiresFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("method", "rf")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/discover", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDiscoverEndpointRejectsBadSeed(t *testing.T) {
	req := multipartUpload(t, map[string]string{"seed": "not-a-number"})
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportEndpointReturnsHTML(t *testing.T) {
	req := multipartUpload(t, map[string]string{"method": "spearman"})
	req.URL.Path = "/api/discover/report"
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Relationship Discovery Report") {
		t.Error("report title missing")
	}
}

func TestRunsEndpointWithoutDatabase(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
