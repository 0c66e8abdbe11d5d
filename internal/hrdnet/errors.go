package hrdnet

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is the cause of a FetchError for non-2xx answers.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedResponse is returned when the body is not parsable XML.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrMissingRoot is returned when the XML lacks the registry root node.
	ErrMissingRoot = errors.New("missing root node " + rootNode)
	// ErrInstitutionNotFound is returned when the resolver exhausts its page budget.
	ErrInstitutionNotFound = errors.New("institution id could not be resolved")
)

// FetchError describes a failed registry call: transport failure or timeout,
// non-2xx status or an unparsable top-level document.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hrdnet %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hrdnet %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RecordParseError describes one record that could not be normalized.
// It never fails a batch; the record is dropped and the error logged.
type RecordParseError struct {
	CourseID string
	Field    string
	Value    string
	Err      error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("record %q: field %s=%q: %v", e.CourseID, e.Field, e.Value, e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}
