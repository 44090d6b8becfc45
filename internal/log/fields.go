package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldReferer       = "referer"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldYear          = "year"

	FieldGroupBy       = "group_by"
	FieldYearSelection = "year_selection"
	FieldStage         = "stage"
	FieldUserID        = "user_id"
	FieldDonations     = "donations"
	FieldPayments      = "payments"
	FieldRows          = "rows"
	FieldFilters       = "filters"
	FieldDonationID    = "donation_id"
	FieldPaymentID     = "payment_id"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentReport    = "report"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentIngest    = "ingest"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpUpdate   = "update"
	OpAppend   = "append"
	OpValidate = "validate"
	OpParse    = "parse"
	OpReport   = "report"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// Report pipeline stages, in execution order.
const (
	StageResolveFilters  = "resolve_filters"
	StageLoadWindow      = "load_window"
	StageLoadDonations   = "load_donations"
	StageLoadPayments    = "load_payments"
	StageLookupDirectory = "lookup_directory"
	StageGroup           = "group"
	StageSummarize       = "summarize"
	StagePaginate        = "paginate"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithStage adds the report pipeline stage
func (f LogFields) WithStage(stage string) LogFields {
	f[FieldStage] = stage
	return f
}

// WithReport adds the request parameters needed to diagnose a report run
// without the user's data.
func (f LogFields) WithReport(userID, groupBy, years string) LogFields {
	if userID != "" {
		f[FieldUserID] = userID
	}
	f[FieldGroupBy] = groupBy
	f[FieldYearSelection] = years
	return f
}

// WithCounts adds pipeline volume counters
func (f LogFields) WithCounts(donations, payments, rows int) LogFields {
	f[FieldDonations] = donations
	f[FieldPayments] = payments
	f[FieldRows] = rows
	return f
}

// WithPayment adds ledger entry fields
func (f LogFields) WithPayment(paymentID, donationID, amount, currency string) LogFields {
	f[FieldPaymentID] = paymentID
	f[FieldDonationID] = donationID
	f[FieldAmount] = amount
	f[FieldCurrency] = currency
	return f
}

// WithHTTPRequest adds HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query, userAgent, referer string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	f[FieldReferer] = referer
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
