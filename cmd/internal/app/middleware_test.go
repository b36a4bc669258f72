package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusClass(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{42, "other"},
		{900, "other"},
	}
	for _, tc := range cases {
		if got := statusClass(tc.code); got != tc.want {
			t.Errorf("statusClass(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestRequestLoggingCapturesStatusAndBytes(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}), log)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status: got %d", rec.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "status=418") {
		t.Fatalf("log line missing status: %q", out)
	}
	if !strings.Contains(out, "path=/teapot") {
		t.Fatalf("log line missing path: %q", out)
	}
}

func TestLoggingResponseWriterPreservesFlusher(t *testing.T) {
	rec := httptest.NewRecorder()
	lrw := &loggingResponseWriter{ResponseWriter: rec, status: http.StatusOK}

	// httptest.ResponseRecorder implements http.Flusher.
	var w http.ResponseWriter = lrw
	if _, ok := w.(http.Flusher); !ok {
		t.Fatal("wrapper must expose Flush")
	}
	lrw.Flush()
	if !rec.Flushed {
		t.Fatal("Flush must reach the underlying writer")
	}
}

func TestMetricsMiddlewareCounts(t *testing.T) {
	m := NewMetrics()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rec.Code)
	}

	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "recipehub_http_requests_total" {
			found = true
			if len(mf.GetMetric()) == 0 {
				t.Fatal("request counter has no samples")
			}
		}
	}
	if !found {
		t.Fatal("request counter not registered")
	}
}
