package log

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey struct{}

// WithLogger returns a copy of ctx that carries l.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request logger stored by Middleware, or the slog
// default when the context carries none.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	return &Logger{Logger: slog.Default(), component: ComponentHTTP}
}

// Middleware gives every request its own logger, tagged with the request id
// that requestID reads from the request context. It must run after the
// middleware that assigns the id.
func Middleware(logger *Logger, requestID func(context.Context) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger
			if id := requestID(r.Context()); id != "" {
				l = l.With(FieldRequestID, id)
			}
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), l)))
		})
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogHTTPStart logs the start of an HTTP request
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent"), r.Header.Get("Referer")).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.logger.InfoContext(ctx, "HTTP request started", fields.ToSlice()...)
}

// LogHTTPEnd logs the completion of an HTTP request
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "", "").
		WithHTTPResponse(statusCode, durationMs, statusCode < 400).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)

	sl.logger.Logger.Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
}

// LogReportCompleted logs a finished report run with its volume counters
func (sl *StructuredLogger) LogReportCompleted(ctx context.Context, fields LogFields) {
	fields = fields.
		WithOperation(OpReport).
		WithComponent(ComponentReport)

	sl.logger.InfoContext(ctx, "Report completed", fields.ToSlice()...)
}

// LogReportFailure logs a failed report run with the stage that failed and the
// request parameters.
func (sl *StructuredLogger) LogReportFailure(ctx context.Context, stage string, err error, fields LogFields) {
	fields = fields.
		WithStage(stage).
		WithError(err).
		WithOperation(OpReport).
		WithComponent(ComponentReport)

	sl.logger.ErrorContext(ctx, "Report failed", fields.ToSlice()...)
}

// LogPaymentIngested logs a ledger entry appended from the queue
func (sl *StructuredLogger) LogPaymentIngested(ctx context.Context, paymentID, donationID, amount, currency string) {
	fields := NewFields().
		WithPayment(paymentID, donationID, amount, currency).
		WithOperation(OpAppend).
		WithComponent(ComponentIngest)

	sl.logger.InfoContext(ctx, "Payment ingested", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}