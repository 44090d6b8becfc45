package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"donorbase/internal/cache"
	"donorbase/internal/core"
	"donorbase/internal/log"
	"donorbase/internal/middleware/ratelimit"
	"donorbase/internal/middleware/security"
	"donorbase/internal/middleware/trace"
	"donorbase/internal/store"
)

// Reports is the report engine as seen by the handlers.
type Reports interface {
	GroupedDonations(ctx context.Context, f core.ReportFilters) (core.GroupedReport, error)
	Payments(ctx context.Context, f core.ReportFilters) ([]core.PaymentReportRow, error)
	YearlySummary(ctx context.Context, f core.ReportFilters) ([]core.YearlySummaryRow, error)
	AvailableYears(ctx context.Context) ([]string, error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Addr string
	// CacheTTL bounds how long the available-years list is reused.
	CacheTTL  time.Duration
	RateLimit ratelimit.Config
	// Pinger is checked by /readyz when set.
	Pinger Pinger
	Logger *log.Logger
}

type Server struct {
	http.Server
	reports Reports
	filters store.GlobalFilterStore
	pinger  Pinger
	logger  *log.Logger

	years        *cache.LRU[[]string]
	cacheManager *cache.Manager
	limiter      *ratelimit.Limiter
	detector     *security.Detector
	tracer       *trace.Middleware

	metrics      appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	started        time.Time
	reports        atomic.Int64
	reportFailures atomic.Int64
	filterUpdates  atomic.Int64
}

const yearsCacheKey = "years"

// NewServer wires routes and middleware. Call Shutdown to release background loops.
func NewServer(opts Options, reports Reports, filters store.GlobalFilterStore) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewFromLevel(log.ComponentHTTP, "info")
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		reports:      reports,
		filters:      filters,
		pinger:       opts.Pinger,
		logger:       opts.Logger,
		years:        cache.NewLRU[[]string](1, opts.CacheTTL),
		cacheManager: cache.NewManager(opts.Logger.WithComponent(log.ComponentCache)),
		limiter:      ratelimit.NewLimiter(opts.RateLimit),
		detector:     security.NewDetector(opts.Logger.WithComponent(log.ComponentSecurity)),
	}
	s.metrics.started = time.Now()
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, opts.Logger)

	s.cacheManager.Register(s.years)
	if fs, ok := filters.(*cache.FilterStore); ok {
		s.cacheManager.Register(fs.Cache())
	}
	s.cacheManager.StartCleanup(context.Background(), 10*time.Minute)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/reports/grouped", s.handleGroupedReport)
	api.HandleFunc("POST /api/reports/grouped", s.handleGroupedReportJSON)
	api.HandleFunc("GET /api/reports/payments", s.handlePaymentsReport)
	api.HandleFunc("GET /api/reports/yearly", s.handleYearlySummary)
	api.HandleFunc("GET /api/reports/years", s.handleAvailableYears)
	api.HandleFunc("GET /api/users/{id}/global-filters", s.handleGetGlobalFilters)
	api.HandleFunc("PUT /api/users/{id}/global-filters", s.handlePutGlobalFilters)

	onLimit := func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldComponent, log.ComponentRateLimit,
			log.FieldClientIP, s.detector.ExtractClientIP(r),
			log.FieldPath, r.URL.Path)
		TooManyRequestsError().Write(w)
	}

	root := http.NewServeMux()
	root.Handle("/api/", s.limiter.Middleware(s.detector.ExtractClientIP, onLimit)(api))
	root.HandleFunc("GET /healthz", s.handleHealth)
	root.HandleFunc("GET /readyz", s.handleReady)
	root.HandleFunc("GET /metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.APIHeadersConfig())
	requestLogger := log.Middleware(s.logger, trace.GetRequestID)
	s.Handler = s.tracer.Middleware(requestLogger(headers.Middleware(s.detector.Middleware(root))))
	return s
}

// Shutdown stops background loops and then the HTTP server. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// fail writes the error response for err and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	resp := errorResponse(err)
	if statusFor(err) >= http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldOperation, op,
			log.FieldPath, r.URL.Path,
			log.FieldError, err.Error())
	}
	resp.Write(w)
}
