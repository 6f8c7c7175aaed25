package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/testform"
	"github.com/goliatone/go-formkit/pkg/components"
	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// demoForm is what the commands need from a form, whatever its record type.
type demoForm interface {
	ID() string
	Fields() []form.Field
	Bind(ctx context.Context, name string) (state.Field, error)
	Change(ctx context.Context, name string, value any) error
	Blur(ctx context.Context, name string) error
	Submit(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
	Render(ctx context.Context) ([]byte, error)
	Values() validation.Values
	Errors() validation.FieldErrors
	FormErrors() []string
	Unmount(ctx context.Context)
}

// openForm builds the form named by --definition, or the login form. Every
// accepted record is passed to onSubmit as plain values.
func openForm(cmd *cobra.Command, onSubmit func(context.Context, validation.Values) error, opts ...form.Option) (demoForm, error) {
	opts = append([]form.Option{form.WithLogger(logger)}, opts...)

	path, _ := cmd.Flags().GetString("definition")
	if strings.TrimSpace(path) == "" {
		f, err := testform.New(func(ctx context.Context, c testform.Credentials) error {
			return onSubmit(ctx, validation.Values{"email": c.Email, "password": c.Password})
		}, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	def, err := definition.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	logger.Debug("definition loaded", "source", def.Source, "fields", len(def.Fields))
	f, err := definition.Build[validation.Values](def, onSubmit,
		definition.WithRegistry(components.NewDefaultRegistry()),
		definition.WithFormOptions(opts...),
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// applyAssignments applies name=value pairs, typing values by the field's
// input type.
func applyAssignments(ctx context.Context, f demoForm, assignments []string) error {
	types := make(map[string]form.InputType, len(f.Fields()))
	for _, field := range f.Fields() {
		types[field.Name] = field.Type
	}
	for _, assignment := range assignments {
		name, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, want name=value", assignment)
		}
		name = strings.TrimSpace(name)
		value, err := typedValue(types[name], raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if err := f.Change(ctx, name, value); err != nil {
			return err
		}
		if err := f.Blur(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func typedValue(kind form.InputType, raw string) (any, error) {
	switch kind {
	case form.InputCheckbox:
		return strconv.ParseBool(strings.TrimSpace(raw))
	case form.InputNumber:
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	default:
		return raw, nil
	}
}
