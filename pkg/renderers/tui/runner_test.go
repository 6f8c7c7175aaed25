package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/validation"
)

type stubDriver struct {
	inputs   map[string][]string
	confirms map[string][]bool
	prompted []string
	infos    []string
	defaults map[string]string
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		inputs:   make(map[string][]string),
		confirms: make(map[string][]bool),
		defaults: make(map[string]string),
	}
}

func (s *stubDriver) next(message string) (string, error) {
	s.prompted = append(s.prompted, message)
	queue := s.inputs[message]
	if len(queue) == 0 {
		return "", tui.ErrAborted
	}
	s.inputs[message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	s.defaults[cfg.Message] = cfg.Default
	return s.next(cfg.Message)
}

func (s *stubDriver) Password(_ context.Context, cfg tui.InputConfig) (string, error) {
	return s.next(cfg.Message)
}

func (s *stubDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	s.prompted = append(s.prompted, cfg.Message)
	queue := s.confirms[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.confirms[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	return s.next(cfg.Message)
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func loginForm(t *testing.T, onSubmit form.SubmitFunc[credentials]) *form.Form[credentials] {
	t.Helper()
	schema := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(6)).
		WithProperty("remember", openapi3.NewBoolSchema()).
		WithRequired([]string{"email", "password"})
	validator, err := validation.NewSchemaValidator(schema)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	fields := []form.Field{
		{Name: "email", Label: "Email", Type: form.InputEmail, DefaultValue: validation.Values{"email": "test@gmail.com"}},
		{Name: "password", Label: "Password", Type: form.InputPassword, DefaultValue: validation.Values{"password": ""}},
		{Name: "remember", Label: "Remember me", Type: form.InputCheckbox, DefaultValue: validation.Values{"remember": true}},
	}
	f, err := form.New(fields, validator, onSubmit)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestRunRepromptsOnlyInvalidFields(t *testing.T) {
	var received []credentials
	f := loginForm(t, func(_ context.Context, c credentials) error {
		received = append(received, c)
		return nil
	})

	driver := newStubDriver()
	driver.inputs["Email"] = []string{"test@gmail.com"}
	driver.inputs["Password"] = []string{"123", "secret1"}

	err := tui.Run(context.Background(), f, tui.WithPromptDriver(driver), tui.WithTheme(tui.Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"Email", "Password", "Remember me", "Password"}, driver.prompted); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"! password: Must be at least 6 characters"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	want := []credentials{{Email: "test@gmail.com", Password: "secret1", Remember: true}}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("submitted records mismatch (-want +got):\n%s", diff)
	}
	if got := driver.defaults["Email"]; got != "test@gmail.com" {
		t.Fatalf("expected email prompt to default to current value, got %q", got)
	}
}

func TestRunStopsAfterMaxAttempts(t *testing.T) {
	f := loginForm(t, func(context.Context, credentials) error {
		t.Fatalf("handler must not run")
		return nil
	})

	driver := newStubDriver()
	driver.inputs["Email"] = []string{"test@gmail.com"}
	driver.inputs["Password"] = []string{"1", "2"}

	err := tui.Run(context.Background(), f, tui.WithPromptDriver(driver), tui.WithMaxAttempts(2))
	if !errors.Is(err, tui.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRunPropagatesAbort(t *testing.T) {
	f := loginForm(t, func(context.Context, credentials) error { return nil })

	err := tui.Run(context.Background(), f, tui.WithPromptDriver(newStubDriver()))
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunReturnsHandlerError(t *testing.T) {
	boom := errors.New("backend unavailable")
	f := loginForm(t, func(context.Context, credentials) error { return boom })

	driver := newStubDriver()
	driver.inputs["Email"] = []string{"test@gmail.com"}
	driver.inputs["Password"] = []string{"secret1"}

	err := tui.Run(context.Background(), f, tui.WithPromptDriver(driver))
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if diff := cmp.Diff([]string{"backend unavailable"}, f.FormErrors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsWhenOnlyFormErrorsRemain(t *testing.T) {
	validator := validation.ValidatorFunc(func(context.Context, validation.Values) (validation.Values, validation.FieldErrors) {
		return nil, validation.FieldErrors{{Code: validation.CodeInvalid, Message: "registrations are closed"}}
	})
	fields := []form.Field{{Name: "email", Label: "Email", Type: form.InputEmail}}
	f, err := form.New(fields, validator, func(context.Context, validation.Values) error {
		t.Fatalf("handler must not run")
		return nil
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	driver := newStubDriver()
	driver.inputs["Email"] = []string{"ada@example.com"}

	err = tui.Run(context.Background(), f, tui.WithPromptDriver(driver), tui.WithMaxAttempts(5))
	if !errors.Is(err, tui.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "registrations are closed") {
		t.Fatalf("expected form error in %q", err)
	}
	if diff := cmp.Diff([]string{"Email"}, driver.prompted); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"registrations are closed"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}
