package http

import (
	"context"
	"net/http"

	"donorbase/internal/cache"
	"donorbase/internal/core"
	"donorbase/internal/log"
)

type paymentsResponse struct {
	Rows []core.PaymentReportRow `json:"rows"`
}

type yearlyResponse struct {
	Rows []core.YearlySummaryRow `json:"rows"`
}

type yearsResponse struct {
	Years []string `json:"years"`
}

func (s *Server) handleGroupedReport(w http.ResponseWriter, r *http.Request) {
	f, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	s.serveGrouped(w, r, f)
}

// handleGroupedReportJSON accepts the full filter set as a JSON body.
func (s *Server) handleGroupedReportJSON(w http.ResponseWriter, r *http.Request) {
	var f core.ReportFilters
	if err := DecodeJSON(w, r, &f); err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	s.serveGrouped(w, r, f)
}

func (s *Server) serveGrouped(w http.ResponseWriter, r *http.Request, f core.ReportFilters) {
	report, err := s.reports.GroupedDonations(r.Context(), f)
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.metrics.reports.Add(1)
	NewJSONResponse().Data(report).Write(w)
}

func (s *Server) handlePaymentsReport(w http.ResponseWriter, r *http.Request) {
	f, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	rows, err := s.reports.Payments(r.Context(), f)
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.metrics.reports.Add(1)
	NewJSONResponse().Data(paymentsResponse{Rows: rows}).Write(w)
}

func (s *Server) handleYearlySummary(w http.ResponseWriter, r *http.Request) {
	f, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	rows, err := s.reports.YearlySummary(r.Context(), f)
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.metrics.reports.Add(1)
	NewJSONResponse().Data(yearlyResponse{Rows: rows}).Write(w)
}

func (s *Server) handleAvailableYears(w http.ResponseWriter, r *http.Request) {
	years, hit, err := cache.GetOrLoad[[]string](r.Context(), s.years, yearsCacheKey, func(ctx context.Context) ([]string, error) {
		return s.reports.AvailableYears(ctx)
	})
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	if years == nil {
		years = []string{}
	}
	log.FromContext(r.Context()).DebugContext(r.Context(), "Available years served", "cache_hit", hit, "count", len(years))
	NewJSONResponse().Data(yearsResponse{Years: years}).Write(w)
}

func (s *Server) reportFailed(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.metrics.reportFailures.Add(1)
	}
	s.fail(w, r, log.OpReport, err)
}
