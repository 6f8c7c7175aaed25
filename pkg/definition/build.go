package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/components"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	registry    *components.Registry
	formOptions []form.Option
}

// WithRegistry resolves component names through registry instead of the
// default registry.
func WithRegistry(registry *components.Registry) BuildOption {
	return func(cfg *buildConfig) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithFormOptions appends options applied after the ones the definition
// implies, so callers can override them.
func WithFormOptions(opts ...form.Option) BuildOption {
	return func(cfg *buildConfig) {
		cfg.formOptions = append(cfg.formOptions, opts...)
	}
}

// Build turns a definition into a mounted form.
func Build[T any](def *Definition, onSubmit form.SubmitFunc[T], opts ...BuildOption) (*form.Form[T], error) {
	if def == nil {
		return nil, fmt.Errorf("definition: definition is nil")
	}

	cfg := buildConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	fields, err := def.FormFields(cfg.registry)
	if err != nil {
		return nil, err
	}
	validator, err := def.Validator()
	if err != nil {
		return nil, err
	}
	formOpts, err := def.FormOptions()
	if err != nil {
		return nil, err
	}
	formOpts = append(formOpts, cfg.formOptions...)

	f, err := form.New(fields, validator, onSubmit, formOpts...)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", def.Source, err)
	}
	return f, nil
}

// FormFields converts the field specs into descriptors, resolving component
// names through registry.
func (d *Definition) FormFields(registry *components.Registry) ([]form.Field, error) {
	fields := make([]form.Field, 0, len(d.Fields))
	for _, spec := range d.Fields {
		name := strings.TrimSpace(spec.Name)
		field := form.Field{
			Name:        name,
			Label:       spec.Label,
			Description: spec.Description,
			Type:        form.InputType(strings.TrimSpace(spec.Type)),
			Placeholder: spec.Placeholder,
			ClassName:   spec.ClassName,
		}
		if spec.Default != nil {
			field.DefaultValue = validation.Values{name: spec.Default}
		}
		if component := strings.TrimSpace(spec.Component); component != "" {
			if registry == nil {
				return nil, fmt.Errorf("definition: field %q uses component %q but no registry is configured", name, component)
			}
			renderer, err := registry.Renderer(component)
			if err != nil {
				return nil, fmt.Errorf("definition: field %q: %w", name, err)
			}
			field.Component = renderer
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// Validator builds the schema validator from the schema section.
func (d *Definition) Validator() (*validation.SchemaValidator, error) {
	schema, err := validation.SchemaFromMap(d.Schema)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", d.Source, err)
	}
	validator, err := validation.NewSchemaValidator(schema)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", d.Source, err)
	}
	return validator, nil
}

// FormOptions maps the document settings onto form options.
func (d *Definition) FormOptions() ([]form.Option, error) {
	mode, err := state.ParseMode(d.Mode)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", d.Source, err)
	}
	opts := []form.Option{
		form.WithMode(mode),
		form.WithResetButton(d.ResetButton),
		form.WithLayout(d.Layout),
	}
	if d.ID != "" {
		opts = append(opts, form.WithID(d.ID))
	}
	if d.SubmitLabel != "" {
		opts = append(opts, form.WithSubmitLabel(d.SubmitLabel))
	}
	if d.ResetLabel != "" {
		opts = append(opts, form.WithResetLabel(d.ResetLabel))
	}
	return opts, nil
}
