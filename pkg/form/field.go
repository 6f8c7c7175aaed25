package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// InputType hints which control a field renders.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
	InputNumber   InputType = "number"
	InputTel      InputType = "tel"
	InputURL      InputType = "url"
	InputSearch   InputType = "search"
	InputDate     InputType = "date"
	InputTextarea InputType = "textarea"
	InputCheckbox InputType = "checkbox"
	InputHidden   InputType = "hidden"
)

// Field describes one form field.
type Field struct {
	Name        string
	Label       string
	Description string
	Type        InputType
	Placeholder string
	ClassName   string
	// DefaultValue is a partial record; only DefaultValue[Name] is read.
	DefaultValue validation.Values
	// Component overrides the default control when set.
	Component FieldRenderer
}

func (f Field) inputType() InputType {
	if trimmed := InputType(strings.TrimSpace(string(f.Type))); trimmed != "" {
		return trimmed
	}
	return InputText
}

// Layout places fields and the action controls on a CSS grid. Each field
// occupies the area named after it; the actions use the reserved "submit" and
// "reset" areas.
type Layout struct {
	GridTemplateAreas   string `json:"gridTemplateAreas,omitempty" yaml:"gridTemplateAreas,omitempty"`
	GridTemplateColumns string `json:"gridTemplateColumns,omitempty" yaml:"gridTemplateColumns,omitempty"`
}

// IsZero reports whether neither grid property is set.
func (l Layout) IsZero() bool {
	return strings.TrimSpace(l.GridTemplateAreas) == "" && strings.TrimSpace(l.GridTemplateColumns) == ""
}

const (
	// AreaSubmit is the grid area of the submit control.
	AreaSubmit = "submit"
	// AreaReset is the grid area of the reset control.
	AreaReset = "reset"
)

// DefaultValues folds the field list into the initial record: each field
// contributes DefaultValue[Name] under Name. Fields without an entry leave the
// key absent. Empty and duplicate names are rejected.
func DefaultValues(fields []Field) (validation.Values, error) {
	out := make(validation.Values, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for idx, field := range fields {
		name := field.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w (field %d)", ErrFieldNameRequired, idx)
		}
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}

		if value, ok := field.DefaultValue[name]; ok {
			out[name] = value
		}
	}
	return out.Clone(), nil
}
