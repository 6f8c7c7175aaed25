package form

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/state"
)

// FieldRenderer renders the control of one field from its bound accessor
// and its descriptor.
type FieldRenderer interface {
	RenderField(ctx context.Context, field state.Field, desc Field) (string, error)
}

// FieldRendererFunc adapts a function into a FieldRenderer.
type FieldRendererFunc func(ctx context.Context, field state.Field, desc Field) (string, error)

// RenderField calls fn.
func (fn FieldRendererFunc) RenderField(ctx context.Context, field state.Field, desc Field) (string, error) {
	return fn(ctx, field, desc)
}

// DefaultControl renders a label, a single-line input, the description and
// an error region. The zero value renders with the embedded templates.
type DefaultControl struct {
	Templates template.TemplateRenderer
	// Template is the template path; defaults to the embedded input template.
	Template string
}

var _ FieldRenderer = DefaultControl{}

// RenderField implements FieldRenderer.
func (c DefaultControl) RenderField(_ context.Context, field state.Field, desc Field) (string, error) {
	templates := c.Templates
	if templates == nil {
		engine, err := embeddedEngine()
		if err != nil {
			return "", err
		}
		templates = engine
	}

	name := c.Template
	if strings.TrimSpace(name) == "" {
		name = defaultInputTemplate
	}

	id := field.ID
	if id == "" {
		id = field.Name
	}

	out, err := templates.RenderTemplate(name, map[string]any{
		"id":          id,
		"name":        field.Name,
		"type":        string(desc.inputType()),
		"value":       field.StringValue(),
		"label":       desc.Label,
		"placeholder": desc.Placeholder,
		"class_name":  desc.ClassName,
		"description": sanitizeDescription(desc.Description),
		"error":       field.Error,
	})
	if err != nil {
		return "", fmt.Errorf("form: render default control for %q: %w", field.Name, err)
	}
	return out, nil
}

var (
	embeddedEngineOnce sync.Once
	embeddedEngineInst *gotemplate.Engine
	embeddedEngineErr  error
)

func embeddedEngine() (*gotemplate.Engine, error) {
	embeddedEngineOnce.Do(func() {
		embeddedEngineInst, embeddedEngineErr = gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(templateExtension),
		)
		if embeddedEngineErr != nil {
			embeddedEngineErr = fmt.Errorf("form: configure embedded templates: %w", embeddedEngineErr)
		}
	})
	return embeddedEngineInst, embeddedEngineErr
}
