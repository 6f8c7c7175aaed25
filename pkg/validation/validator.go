package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validator checks a candidate record. On success it returns the validated
// record and no errors; otherwise the returned record is nil and the errors
// name each failing field.
type Validator interface {
	Validate(ctx context.Context, values Values) (Values, FieldErrors)
}

// KeySet is implemented by validators that know which field names they
// recognise. Forms use it to reject fields the schema does not describe.
type KeySet interface {
	Keys() []string
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(ctx context.Context, values Values) (Values, FieldErrors)

// Validate calls fn.
func (fn ValidatorFunc) Validate(ctx context.Context, values Values) (Values, FieldErrors) {
	return fn(ctx, values)
}

// SchemaValidator validates records against an OpenAPI object schema.
type SchemaValidator struct {
	schema *openapi3.Schema
	keys   []string
}

var _ Validator = (*SchemaValidator)(nil)
var _ KeySet = (*SchemaValidator)(nil)

// NewSchemaValidator wraps an object schema. The schema's properties define
// the recognised keys; validated output is restricted to them.
func NewSchemaValidator(schema *openapi3.Schema) (*SchemaValidator, error) {
	if schema == nil {
		return nil, ErrSchemaRequired
	}
	if schema.Type != nil && !schema.Type.Permits(openapi3.TypeObject) {
		return nil, ErrSchemaNotObject
	}
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: no properties declared", ErrSchemaNotObject)
	}

	registerFormats()

	keys := make([]string, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("validation: property %q has no resolved schema", name)
		}
		keys = append(keys, name)
	}
	sort.Strings(keys)

	return &SchemaValidator{schema: schema, keys: keys}, nil
}

// MustSchemaValidator mirrors NewSchemaValidator but panics on error.
func MustSchemaValidator(schema *openapi3.Schema) *SchemaValidator {
	validator, err := NewSchemaValidator(schema)
	if err != nil {
		panic(err)
	}
	return validator
}

// Schema exposes the wrapped schema.
func (v *SchemaValidator) Schema() *openapi3.Schema {
	return v.schema
}

// Keys returns the sorted property names the schema recognises.
func (v *SchemaValidator) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Validate runs the schema against values and collects one error per field.
func (v *SchemaValidator) Validate(_ context.Context, values Values) (Values, FieldErrors) {
	candidate, err := toJSONValues(values)
	if err != nil {
		return nil, FieldErrors{{Code: CodeInvalid, Message: err.Error()}}
	}

	if err := v.schema.VisitJSON(candidate, openapi3.MultiErrors()); err != nil {
		errs := make(FieldErrors, 0, 4)
		for _, schemaErr := range flattenSchemaErrors(err) {
			errs = append(errs, v.fieldError(schemaErr))
		}
		if len(errs) == 0 {
			errs = append(errs, FieldError{Code: CodeInvalid, Message: strings.TrimSpace(err.Error())})
		}
		return nil, normalizeErrors(errs, v.keys)
	}

	return Values(candidate).Pick(v.keys), nil
}

func (v *SchemaValidator) fieldError(err *openapi3.SchemaError) FieldError {
	field := ""
	if pointer := err.JSONPointer(); len(pointer) > 0 {
		field = pointer[0]
	}

	code, message := describeSchemaError(err)
	if custom := v.customMessage(field, err.SchemaField); custom != "" {
		message = custom
	}

	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

func (v *SchemaValidator) customMessage(field, keyword string) string {
	if field == "" {
		return ""
	}
	ref := v.schema.Properties[field]
	if ref == nil || ref.Value == nil {
		return ""
	}
	return extensionMessage(ref.Value.Extensions, keyword)
}

func flattenSchemaErrors(err error) []*openapi3.SchemaError {
	var out []*openapi3.SchemaError
	var walk func(error)
	walk = func(current error) {
		switch typed := current.(type) {
		case openapi3.MultiError:
			for _, item := range typed {
				walk(item)
			}
		case *openapi3.SchemaError:
			out = append(out, typed)
		}
	}
	walk(err)
	return out
}
