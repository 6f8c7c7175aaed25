package components

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/state"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const templatePrefix = "templates/"

// TemplatesFS exposes the embedded component templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// controls.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Description: "single-line input (label, input, description, error)",
		Renderer:    form.DefaultControl{},
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Description: "multi-line text area",
		Renderer:    TemplateControl{Template: templatePrefix + "textarea.tmpl"},
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Description: "boolean checkbox with inline label",
		Renderer:    TemplateControl{Template: templatePrefix + "checkbox.tmpl"},
	})

	return registry
}

// TemplateControl renders a field through a template. The zero Templates
// value uses the embedded component templates.
type TemplateControl struct {
	Templates template.TemplateRenderer
	Template  string
}

var _ form.FieldRenderer = TemplateControl{}

// RenderField implements form.FieldRenderer.
func (c TemplateControl) RenderField(_ context.Context, field state.Field, desc form.Field) (string, error) {
	templates := c.Templates
	if templates == nil {
		engine, err := embeddedEngine()
		if err != nil {
			return "", err
		}
		templates = engine
	}

	id := field.ID
	if id == "" {
		id = field.Name
	}

	out, err := templates.RenderTemplate(c.Template, map[string]any{
		"id":          id,
		"name":        field.Name,
		"value":       field.StringValue(),
		"checked":     truthy(field.Value),
		"label":       desc.Label,
		"placeholder": desc.Placeholder,
		"class_name":  desc.ClassName,
		"description": desc.Description,
		"error":       field.Error,
	})
	if err != nil {
		return "", fmt.Errorf("components: render template %q: %w", c.Template, err)
	}
	return out, nil
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && parsed
	default:
		return false
	}
}

var (
	engineOnce sync.Once
	engineInst *gotemplate.Engine
	engineErr  error
)

func embeddedEngine() (*gotemplate.Engine, error) {
	engineOnce.Do(func() {
		engineInst, engineErr = gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		)
		if engineErr != nil {
			engineErr = fmt.Errorf("components: configure templates: %w", engineErr)
		}
	})
	return engineInst, engineErr
}
