package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const defaultMaxAttempts = 3

// Session is the part of a form the runner drives. *form.Form satisfies it
// for every record type.
type Session interface {
	Fields() []form.Field
	Bind(ctx context.Context, name string) (state.Field, error)
	Change(ctx context.Context, name string, value any) error
	Blur(ctx context.Context, name string) error
	Submit(ctx context.Context) (bool, error)
	Errors() validation.FieldErrors
	FormErrors() []string
}

// Runner walks a form in the terminal: it prompts every field, submits, and
// re-prompts only the fields that failed validation.
type Runner struct {
	driver      PromptDriver
	maxAttempts int
	theme       Theme
	logger      *slog.Logger
}

// New constructs a Runner. Without WithPromptDriver it uses survey.
func New(options ...Option) *Runner {
	r := &Runner{
		maxAttempts: defaultMaxAttempts,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Run prompts until the form accepts a submit, the driver fails, or the
// attempt budget is spent. Handler errors from the form are returned as is.
func Run(ctx context.Context, session Session, options ...Option) error {
	return New(options...).Run(ctx, session)
}

// Run executes the prompt loop against session.
func (r *Runner) Run(ctx context.Context, session Session) error {
	if session == nil {
		return fmt.Errorf("tui: session is required")
	}
	pending := session.Fields()

	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, session, field); err != nil {
				return err
			}
		}

		ok, err := session.Submit(ctx)
		if err != nil {
			return err
		}
		if ok {
			r.logger.Debug("tui submit accepted", "attempt", attempt)
			return nil
		}

		errs := session.Errors()
		r.logger.Debug("tui submit rejected", "attempt", attempt, "fields", errs.Fields())
		if err := r.report(ctx, session, errs); err != nil {
			return err
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, errs.Error())
		}
		pending = invalidFields(session.Fields(), errs)
		if len(pending) == 0 {
			return fmt.Errorf("%w: %s", ErrRejected, strings.Join(rejectionMessages(session, errs), "; "))
		}
	}
}

func (r *Runner) promptField(ctx context.Context, session Session, field form.Field) error {
	if field.Type == form.InputHidden {
		return nil
	}
	current, err := session.Bind(ctx, field.Name)
	if err != nil {
		return err
	}

	message := field.Label
	if strings.TrimSpace(message) == "" {
		message = field.Name
	}

	var value any
	switch field.Type {
	case form.InputPassword:
		value, err = r.driver.Password(ctx, InputConfig{Message: message, Help: field.Description})
	case form.InputCheckbox:
		value, err = r.driver.Confirm(ctx, ConfirmConfig{Message: message, Help: field.Description, Default: truthy(current.Value)})
	case form.InputTextarea:
		value, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Help: field.Description, Default: current.StringValue()})
	case form.InputNumber:
		var raw string
		raw, err = r.driver.Input(ctx, InputConfig{Message: message, Help: field.Description, Default: current.StringValue()})
		value = parseNumber(raw)
	default:
		value, err = r.driver.Input(ctx, InputConfig{Message: message, Help: field.Description, Default: current.StringValue()})
	}
	if err != nil {
		return err
	}

	if err := session.Change(ctx, field.Name, value); err != nil {
		return err
	}
	return session.Blur(ctx, field.Name)
}

func (r *Runner) report(ctx context.Context, session Session, errs validation.FieldErrors) error {
	for _, msg := range session.FormErrors() {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	for _, item := range errs {
		if item.Field == "" {
			continue
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, item.Field, item.Message)); err != nil {
			return err
		}
	}
	return nil
}

// rejectionMessages lists form-level messages followed by any field errors
// that could not be matched to a prompt.
func rejectionMessages(session Session, errs validation.FieldErrors) []string {
	messages := session.FormErrors()
	for _, item := range errs {
		if item.Field != "" {
			messages = append(messages, fmt.Sprintf("%s: %s", item.Field, item.Message))
		}
	}
	return messages
}

func invalidFields(fields []form.Field, errs validation.FieldErrors) []form.Field {
	out := make([]form.Field, 0, len(errs))
	for _, field := range fields {
		if _, failed := errs.For(field.Name); failed {
			out = append(out, field)
		}
	}
	return out
}

// parseNumber keeps the raw string when it is not numeric so the schema can
// report the type error.
func parseNumber(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	return raw
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}
