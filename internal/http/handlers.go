package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady checks the backing store.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := map[string]any{}

	if s.pinger == nil {
		checks["store"] = "ok"
	} else if err := s.pinger.Ping(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	checks["rate_limiter"] = map[string]any{"active_clients": s.limiter.ActiveClients()}
	checks["cache"] = map[string]any{"years_entries": s.years.Size()}

	NewJSONResponse().Status(code).Data(map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics exposes counters in Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	yearStats := s.years.Stats()
	counters := []struct {
		name, help, kind string
		value            int64
	}{
		{"http_requests_total", "Total number of HTTP requests", "counter", s.tracer.GetMetrics().TotalRequests},
		{"reports_total", "Reports served", "counter", s.metrics.reports.Load()},
		{"report_failures_total", "Reports that failed with a server error", "counter", s.metrics.reportFailures.Load()},
		{"global_filter_updates_total", "Saved global filter sets", "counter", s.metrics.filterUpdates.Load()},
		{"years_cache_hits_total", "Available-years cache hits", "counter", yearStats.Hits},
		{"years_cache_misses_total", "Available-years cache misses", "counter", yearStats.Misses},
		{"rate_limit_hits_total", "Requests rejected by the rate limiter", "counter", s.limiter.GetMetrics().TotalHits},
		{"suspicious_requests_total", "Requests flagged by the detector", "counter", s.detector.GetMetrics().SuspiciousRequests},
		{"active_rate_limit_clients", "Clients tracked by the rate limiter", "gauge", int64(s.limiter.ActiveClients())},
		{"uptime_seconds", "Process uptime in seconds", "gauge", int64(time.Since(s.metrics.started).Seconds())},
	}
	for _, c := range counters {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %d\n\n", c.name, c.help, c.name, c.kind, c.name, c.value)
	}
}
