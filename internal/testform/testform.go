// Package testform is the two-field login form used by the demo CLI and as
// an end-to-end fixture for the form package.
package testform

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// ID is the form id; element ids derive from it.
const ID = "test-form"

// Credentials is the validated record delivered on submit.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Layout places the password and email side by side above the actions.
var Layout = form.Layout{
	GridTemplateAreas:   "'password password email email' 'reset submit submit submit'",
	GridTemplateColumns: "1fr 1fr 1fr 1fr",
}

//go:embed login.yaml
var loginSchema []byte

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Validator returns the login schema validator: email must be a valid
// address and password at least six characters.
func Validator() (*validation.SchemaValidator, error) {
	schema, err := validation.ParseSchema(loginSchema)
	if err != nil {
		return nil, fmt.Errorf("testform: parse schema: %w", err)
	}
	return validation.NewSchemaValidator(schema)
}

// Fields returns the field list. The email field renders through its own
// component; password uses the default control.
func Fields() []form.Field {
	return []form.Field{
		{
			Name:         "email",
			DefaultValue: validation.Values{"email": "test@gmail.com"},
			Component:    form.FieldRendererFunc(renderEmail),
		},
		{
			Name:         "password",
			Label:        "Password",
			Type:         form.InputPassword,
			ClassName:    "bg-red-100 w-full",
			Placeholder:  "Password",
			DefaultValue: validation.Values{"password": ""},
		},
	}
}

// New builds the form. Options are applied after the demo defaults.
func New(onSubmit form.SubmitFunc[Credentials], opts ...form.Option) (*form.Form[Credentials], error) {
	validator, err := Validator()
	if err != nil {
		return nil, err
	}
	options := append([]form.Option{
		form.WithID(ID),
		form.WithLayout(Layout),
		form.WithResetButton(true),
	}, opts...)
	return form.New(Fields(), validator, onSubmit, options...)
}

var (
	engineOnce sync.Once
	engine     *gotemplate.Engine
	engineErr  error
)

func renderEmail(_ context.Context, field state.Field, _ form.Field) (string, error) {
	engineOnce.Do(func() {
		engine, engineErr = gotemplate.New(
			gotemplate.WithFS(templatesFS),
			gotemplate.WithExtension(".tmpl"),
		)
	})
	if engineErr != nil {
		return "", fmt.Errorf("testform: configure templates: %w", engineErr)
	}
	return engine.RenderTemplate("templates/email", map[string]any{
		"id":    field.ID,
		"name":  field.Name,
		"value": field.StringValue(),
		"error": field.Error,
	})
}
