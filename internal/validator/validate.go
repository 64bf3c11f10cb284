package validator

import (
	"sort"

	vd "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldError is the per-field entry of a 400 validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validatable is implemented by request structs.
type Validatable interface {
	Validate() error
}

// FieldErrors flattens an ozzo validation result into a deterministic,
// field-sorted list. A non-validation error yields a single generic entry.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	errs, ok := err.(vd.Errors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]FieldError, 0, len(errs))
	for _, field := range fields {
		out = append(out, FieldError{Field: field, Message: errs[field].Error()})
	}
	return out
}
