// Package http serves the report API.
//
// This file implements a fluent builder for JSON responses and the mapping
// from domain errors to status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"donorbase/internal/core"
	"donorbase/internal/report"
	"donorbase/internal/store"
)

// errBadRequest marks request-shape problems found while parsing parameters.
var errBadRequest = errors.New("bad request")

// JSONResponseBuilder assembles a JSON response.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
	data       any
}

func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Data sets the value encoded as the response body.
func (b *JSONResponseBuilder) Data(v any) *JSONResponseBuilder {
	b.data = v
	return b
}

func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if b.data != nil {
		_ = json.NewEncoder(w).Encode(b.data)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Data(errorBody{Error: message})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

func TooManyRequestsError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, please try again later")
}

// invalidInput lists the sentinels that describe a bad request.
var invalidInput = []error{
	errBadRequest,
	core.ErrInvalidYearLabel,
	core.ErrInvalidDateFilter,
	core.ErrInvalidAmount,
	core.ErrInvalidGroupBy,
	core.ErrInvalidSort,
	core.ErrInvalidPage,
	core.ErrInvalidDate,
}

// statusFor maps an error to a status code. Failures inside a report stage are
// server errors even when they wrap an input sentinel, since the bad value came
// from a collaborator rather than the request.
func statusFor(err error) int {
	var stageErr *report.StageError
	if errors.As(err, &stageErr) {
		return http.StatusInternalServerError
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the response for err; server errors hide their detail.
func errorResponse(err error) *JSONResponseBuilder {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return InternalServerError("internal error")
	}
	return ErrorResponse(code, err.Error())
}
