package trace

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"donorbase/internal/log"
)

func TestMiddleware_AssignsAndEchoesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Component: log.ComponentHTTP, Handler: slog.NewTextHandler(&buf, nil)})
	m := NewMiddleware(func(*http.Request) string { return "203.0.113.9" }, logger)

	var seen string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusBadRequest)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/reports/years", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Errorf("generated request id = %q", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header = %q, want %q", rr.Header().Get(RequestIDHeader), seen)
	}
	out := buf.String()
	if !strings.Contains(out, "status_code=400") || !strings.Contains(out, "level=WARN") {
		t.Errorf("completion log missing status or level: %s", out)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "upstream-42")
	h.ServeHTTP(rr, req)
	if seen != "upstream-42" {
		t.Errorf("incoming request id not kept: %q", seen)
	}

	req.Header.Set(RequestIDHeader, "bad id\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "bad id\n" {
		t.Error("malformed request id must be replaced")
	}

	if got := m.GetMetrics().TotalRequests; got != 3 {
		t.Errorf("TotalRequests = %d, want 3", got)
	}
}
