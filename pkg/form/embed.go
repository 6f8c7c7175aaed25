package form

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	// TemplateKeyForm is the theme key of the form shell template.
	TemplateKeyForm = "formkit.form"
	// TemplateKeyInput is the theme key of the default control template.
	TemplateKeyInput = "formkit.input"

	defaultFormTemplate  = "templates/form.tmpl"
	defaultInputTemplate = "templates/input.tmpl"
	templateExtension    = ".tmpl"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// DefaultPartials maps theme template keys to the embedded templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		TemplateKeyForm:  defaultFormTemplate,
		TemplateKeyInput: defaultInputTemplate,
	}
}

// overlayFS serves files from primary and falls back to the embedded bundle,
// so partial template overrides keep the remaining defaults.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	file, err := o.primary.Open(name)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.fallback.Open(name)
}
