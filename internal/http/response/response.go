// Package response holds the JSON envelopes written by the HTTP handlers for
// success, errors and validation failures.
package response

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// Response is the common JSON envelope.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Machine readable error codes.
const (
	CodeValidation          = "validation_error"
	CodeResolutionFailure   = "resolution_failure"
	CodeNotFound            = "not_found"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeTooManyRequests     = "too_many_requests"
	CodeInternal            = "internal_error"
)

// OKWithData returns a successful Response carrying data.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error returns an error Response.
func Error(code, msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
		Code:   code,
	}
}

// ValidationError joins every violation into one message. Field names are the
// ones reported by the validator, so handlers register their query or json tag names.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be %s characters long", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "gte", "lte", "max", "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is out of range (%s %s)", err.Field(), err.ActualTag(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
		Code:   CodeValidation,
	}
}

// InvalidParam reports a single malformed parameter.
func InvalidParam(name string) Response {
	return Error(CodeValidation, fmt.Sprintf("field %s is not valid", name))
}

// Cached writes a pre-encoded JSON payload produced by the cache layer together
// with the X-Cache and X-Elapsed-ms headers.
func Cached(w http.ResponseWriter, payload []byte, outcome string, elapsed time.Duration) {
	ms := float64(elapsed.Microseconds()) / 1000
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", outcome)
	w.Header().Set("X-Elapsed-ms", strconv.FormatFloat(ms, 'f', 2, 64))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
