package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/form"
)

var (
	// ErrNoFields is returned when a definition declares no fields.
	ErrNoFields = errors.New("definition: at least one field is required")
	// ErrNoSchema is returned when a definition has no schema section.
	ErrNoSchema = errors.New("definition: schema is required")
)

// Definition is the declarative form document: fields, layout, actions and
// the object schema in one file.
type Definition struct {
	ID          string         `json:"id,omitempty" yaml:"id,omitempty"`
	Mode        string         `json:"mode,omitempty" yaml:"mode,omitempty"`
	ResetButton bool           `json:"resetButton,omitempty" yaml:"resetButton,omitempty"`
	SubmitLabel string         `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	ResetLabel  string         `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty"`
	Layout      form.Layout    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Fields      []FieldSpec    `json:"fields" yaml:"fields"`
	Schema      map[string]any `json:"schema" yaml:"schema"`

	Source string `json:"-" yaml:"-"`
}

// FieldSpec declares one field. Component names a registered renderer; empty
// means the default control.
type FieldSpec struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	ClassName   string `json:"className,omitempty" yaml:"className,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Component   string `json:"component,omitempty" yaml:"component,omitempty"`
}

// Parse decodes a definition from JSON or YAML. source names the document in
// error messages.
func Parse(data []byte, source string) (*Definition, error) {
	if strings.TrimSpace(source) == "" {
		source = "<inline>"
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("definition: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yamlErr := yaml.Unmarshal(data, &def); yamlErr != nil {
			return nil, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}
	def.Source = source

	if err := def.check(); err != nil {
		return nil, fmt.Errorf("definition: %s: %w", source, err)
	}
	return &def, nil
}

// Load reads and parses the definition at path inside fsys.
func Load(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

func (d *Definition) check() error {
	if len(d.Fields) == 0 {
		return ErrNoFields
	}
	if len(d.Schema) == 0 {
		return ErrNoSchema
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w (field %d)", form.ErrFieldNameRequired, idx)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w: %q", form.ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
