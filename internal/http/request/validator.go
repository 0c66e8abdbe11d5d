// Package request has helpers shared by handlers for reading and validating input.
package request

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

// NewValidator returns a validator that reports fields by the given struct tag
// (for example "query" or "json") instead of the Go field name.
func NewValidator(tag string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// IntParam parses an optional integer parameter. ok is false when the value is present but not an integer.
func IntParam(raw string, def int) (n int, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return def, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// StringParam returns the trimmed value or def when it is empty.
func StringParam(raw, def string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return def
}
