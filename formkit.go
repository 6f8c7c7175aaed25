// Package formkit renders schema validated forms from field lists. The root
// package re-exports the common types and offers one-call helpers; the pkg/
// subpackages hold the implementation.
package formkit

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/components"
	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Field aliases form.Field.
type Field = form.Field

// Layout aliases form.Layout.
type Layout = form.Layout

// Values aliases validation.Values, the untyped record.
type Values = validation.Values

// Option aliases form.Option.
type Option = form.Option

// New builds a form over the typed record T.
func New[T any](fields []Field, validator validation.Validator, onSubmit form.SubmitFunc[T], opts ...Option) (*form.Form[T], error) {
	return form.New(fields, validator, onSubmit, opts...)
}

// LoadForm reads a definition from fsys and mounts it with the default
// component registry. Accepted records are delivered as Values.
func LoadForm(fsys fs.FS, path string, onSubmit form.SubmitFunc[Values], opts ...Option) (*form.Form[Values], error) {
	def, err := definition.Load(fsys, path)
	if err != nil {
		return nil, err
	}
	return definition.Build(def, onSubmit,
		definition.WithRegistry(components.NewDefaultRegistry()),
		definition.WithFormOptions(opts...),
	)
}

// RenderDefinition loads a definition and returns its initial HTML.
func RenderDefinition(ctx context.Context, fsys fs.FS, path string, opts ...Option) ([]byte, error) {
	f, err := LoadForm(fsys, path, func(context.Context, Values) error { return nil }, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Unmount(ctx)
	return f.Render(ctx)
}

// EmbeddedTemplates exposes the built-in form templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return form.TemplatesFS()
}
