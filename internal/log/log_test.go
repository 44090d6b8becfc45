package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func bufferLogger(buf *bytes.Buffer) *Logger {
	return New(Config{
		Component: ComponentReport,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogReportFailureCarriesStageAndFilters(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(bufferLogger(&buf))

	sl.LogReportFailure(context.Background(), StageLoadPayments, errors.New("db down"),
		NewFields().WithReport("u1", "donor", "last4"))

	out := buf.String()
	for _, want := range []string{
		"stage=load_payments",
		"group_by=donor",
		"year_selection=last4",
		"user_id=u1",
		`error="db down"`,
		"component=report",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestWithReportOmitsEmptyUser(t *testing.T) {
	f := NewFields().WithReport("", "campaign", "תשפ״ה")
	if _, ok := f[FieldUserID]; ok {
		t.Fatalf("user_id should be omitted when empty")
	}
	if f[FieldGroupBy] != "campaign" {
		t.Fatalf("unexpected group_by: %v", f[FieldGroupBy])
	}
}

func TestLogPaymentIngested(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLogger(bufferLogger(&buf)).LogPaymentIngested(context.Background(), "p1", "d1", "300", "ILS")
	out := buf.String()
	if !strings.Contains(out, "payment_id=p1") || !strings.Contains(out, "donation_id=d1") || !strings.Contains(out, "component=ingest") {
		t.Fatalf("unexpected output: %s", out)
	}
}

type requestIDKey struct{}

func TestMiddlewareStoresTaggedLogger(t *testing.T) {
	var buf bytes.Buffer
	idFrom := func(ctx context.Context) string {
		id, _ := ctx.Value(requestIDKey{}).(string)
		return id
	}
	h := Middleware(bufferLogger(&buf), idFrom)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "handled")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), requestIDKey{}, "abc-1"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "request_id=abc-1") || !strings.Contains(out, "component=report") {
		t.Errorf("request log not tagged:\n%s", out)
	}

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("request without id should not be tagged:\n%s", buf.String())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil || l.Component() != ComponentHTTP {
		t.Fatalf("fallback logger = %+v", l)
	}
}
