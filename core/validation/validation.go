package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) HasError() bool {
	return len(r.Errors) > 0
}

func (r *Result) Error() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// Required adds an error when value is blank.
func (r *Result) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, "is required")
	}
}

func (r *Result) MaxLength(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		r.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// MaxBytes guards inputs with a byte limit, such as bcrypt's 72 bytes.
func (r *Result) MaxBytes(field, value string, max int) {
	if len(value) > max {
		r.Add(field, fmt.Sprintf("must be at most %d bytes", max))
	}
}
