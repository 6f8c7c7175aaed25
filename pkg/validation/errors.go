package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes attached to FieldError.Code.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidEnum   = "invalid_enum"
	CodeUnknownKey    = "unknown_key"
	CodeInvalid       = "invalid"
)

var (
	// ErrSchemaRequired is returned when a validator is built without a schema.
	ErrSchemaRequired = errors.New("validation: schema is required")
	// ErrSchemaNotObject is returned when the root schema does not describe an object.
	ErrSchemaNotObject = errors.New("validation: schema must be an object schema")
)

// FieldError describes one failing field. An empty Field marks a form-level
// issue that is not attached to a specific control.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors collects validation failures, at most one per field.
type FieldErrors []FieldError

// Error summarises the first few errors.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	parts := make([]string, 0, maxShown)
	for idx, item := range e {
		if idx == maxShown {
			parts = append(parts, fmt.Sprintf("... (total %d)", len(e)))
			break
		}
		name := item.Field
		if name == "" {
			name = "form"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, item.Message))
	}
	return "validation: " + strings.Join(parts, "; ")
}

// For returns the error attached to field, if any.
func (e FieldErrors) For(field string) (FieldError, bool) {
	for _, item := range e {
		if item.Field == field {
			return item, true
		}
	}
	return FieldError{}, false
}

// Fields returns the names of the failing fields in order.
func (e FieldErrors) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, item := range e {
		out = append(out, item.Field)
	}
	return out
}

// Messages maps field names to their message.
func (e FieldErrors) Messages() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, item := range e {
		out[item.Field] = item.Message
	}
	return out
}

// Without returns a copy of e with the error for field removed.
func (e FieldErrors) Without(field string) FieldErrors {
	var out FieldErrors
	for _, item := range e {
		if item.Field == field {
			continue
		}
		out = append(out, item)
	}
	return out
}

// With returns a copy of e where the entry for item.Field is replaced by item.
func (e FieldErrors) With(item FieldError) FieldErrors {
	out := e.Without(item.Field)
	return append(out, item)
}

// AsError converts e into an error, returning nil when there are no errors.
func AsError(e FieldErrors) error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}
	var errs FieldErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// normalizeErrors drops blank messages, keeps the first error per field and
// orders the result by the supplied key order, unknown keys last.
func normalizeErrors(errs FieldErrors, order []string) FieldErrors {
	if len(errs) == 0 {
		return nil
	}

	rank := make(map[string]int, len(order))
	for idx, key := range order {
		rank[key] = idx
	}

	seen := make(map[string]struct{}, len(errs))
	out := make(FieldErrors, 0, len(errs))
	for _, item := range errs {
		item.Message = strings.TrimSpace(item.Message)
		if item.Message == "" {
			continue
		}
		if _, exists := seen[item.Field]; exists {
			continue
		}
		seen[item.Field] = struct{}{}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Field]
		rj, jok := rank[out[j].Field]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i].Field < out[j].Field
		}
	})

	if len(out) == 0 {
		return nil
	}
	return out
}
