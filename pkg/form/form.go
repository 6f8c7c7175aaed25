package form

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/state"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// SubmitFunc receives the validated record decoded into T.
type SubmitFunc[T any] func(ctx context.Context, value T) error

// Form binds a field list to a validator and renders it. A Form is owned by
// one caller and is not safe for concurrent use.
type Form[T any] struct {
	cfg       config
	fields    []Field
	index     map[string]int
	validator validation.Validator
	onSubmit  SubmitFunc[T]
	logger    *slog.Logger

	templates     template.TemplateRenderer
	formTemplate  string
	inputTemplate string
	cssVars       map[string]string

	defaults validation.Values
	store    *state.Store
}

// New validates the field list, computes the default record and binds the
// state store. Configuration defects are returned as errors.
func New[T any](fields []Field, validator validation.Validator, onSubmit SubmitFunc[T], opts ...Option) (*Form[T], error) {
	if validator == nil {
		return nil, ErrValidatorRequired
	}
	if onSubmit == nil {
		return nil, ErrSubmitHandlerRequired
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	defaults, err := DefaultValues(fields)
	if err != nil {
		return nil, err
	}
	if err := checkKnownFields(fields, validator); err != nil {
		return nil, err
	}

	f := &Form[T]{
		cfg:           cfg,
		fields:        append([]Field(nil), fields...),
		index:         make(map[string]int, len(fields)),
		validator:     validator,
		onSubmit:      onSubmit,
		logger:        cfg.logger,
		formTemplate:  defaultFormTemplate,
		inputTemplate: defaultInputTemplate,
		defaults:      defaults,
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}

	names := make([]string, 0, len(fields))
	for idx, field := range fields {
		f.index[field.Name] = idx
		names = append(names, field.Name)
	}

	if err := f.configureTemplates(); err != nil {
		return nil, err
	}

	store, err := state.New(defaults, validator,
		state.WithMode(cfg.mode),
		state.WithFields(names...),
		state.WithLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("form: bind state: %w", err)
	}
	for _, name := range names {
		store.Ref(name, f.elementID(name))
	}
	f.store = store

	f.logger.Debug("form mounted", "form", cfg.id, "fields", len(fields), "mode", cfg.mode.String())
	emit(context.Background(), cfg.hooks.OnMount, &Event{FormID: cfg.id})
	return f, nil
}

// MustNew mirrors New but panics on configuration defects.
func MustNew[T any](fields []Field, validator validation.Validator, onSubmit SubmitFunc[T], opts ...Option) *Form[T] {
	f, err := New(fields, validator, onSubmit, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func checkKnownFields(fields []Field, validator validation.Validator) error {
	keySet, ok := validator.(validation.KeySet)
	if !ok {
		return nil
	}
	known := make(map[string]struct{})
	for _, key := range keySet.Keys() {
		known[key] = struct{}{}
	}
	for _, field := range fields {
		if _, ok := known[field.Name]; !ok {
			return fmt.Errorf("%w: %q is not described by the schema", ErrUnknownField, field.Name)
		}
	}
	return nil
}

func (f *Form[T]) configureTemplates() error {
	if f.cfg.theme != nil {
		partials := f.cfg.theme.Partials(DefaultPartials())
		f.formTemplate = partials[TemplateKeyForm]
		f.inputTemplate = partials[TemplateKeyInput]
		f.cssVars = f.cfg.theme.CSSVariables("--formkit-")
	}

	switch {
	case f.cfg.templates != nil:
		f.templates = f.cfg.templates
	case f.cfg.templFS != nil:
		engine, err := gotemplate.New(
			gotemplate.WithFS(overlayFS{primary: f.cfg.templFS, fallback: TemplatesFS()}),
			gotemplate.WithExtension(templateExtension),
		)
		if err != nil {
			return fmt.Errorf("form: configure template renderer: %w", err)
		}
		f.templates = engine
	default:
		engine, err := embeddedEngine()
		if err != nil {
			return err
		}
		f.templates = engine
	}
	return nil
}

// ID returns the form element id.
func (f *Form[T]) ID() string {
	return f.cfg.id
}

// Fields returns a copy of the field list.
func (f *Form[T]) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Mounted reports whether Unmount has not been called yet.
func (f *Form[T]) Mounted() bool {
	return f.store != nil
}

// Render produces the form markup. Fields render in list order through
// their Component or the default control.
func (f *Form[T]) Render(ctx context.Context) ([]byte, error) {
	if f.store == nil {
		return nil, ErrUnmounted
	}
	start := time.Now()

	gridded := !f.cfg.layout.IsZero()
	control := DefaultControl{Templates: f.templates, Template: f.inputTemplate}

	fields := make([]map[string]any, 0, len(f.fields))
	children := make([]string, 0, len(f.fields)+2)
	for _, desc := range f.fields {
		var renderer FieldRenderer = control
		if desc.Component != nil {
			renderer = desc.Component
		}

		markup, err := renderer.RenderField(ctx, f.store.Bind(ctx, desc.Name), desc)
		if err != nil {
			return nil, fmt.Errorf("form: render field %q: %w", desc.Name, err)
		}
		if desc.Component != nil {
			markup = sanitizeControl(markup)
		}

		wrapperID := f.elementID(desc.Name) + "-field"
		entry := map[string]any{
			"id":   wrapperID,
			"name": desc.Name,
			"html": markup,
		}
		if gridded {
			entry["style"] = map[string]any{"grid-area": desc.Name}
		}
		fields = append(fields, entry)
		children = append(children, wrapperID)
	}

	submit := map[string]any{"id": f.elementID(AreaSubmit), "label": f.cfg.submitLabel}
	children = append(children, f.elementID(AreaSubmit))
	if gridded {
		submit["style"] = map[string]any{"grid-area": AreaSubmit}
	}

	var reset map[string]any
	if f.cfg.resetButton {
		reset = map[string]any{"id": f.elementID(AreaReset), "label": f.cfg.resetLabel}
		children = append(children, f.elementID(AreaReset))
		if gridded {
			reset["style"] = map[string]any{"grid-area": AreaReset}
		}
	}

	focus := ""
	if f.store.SubmitCount() > 0 {
		focus = f.store.FocusTarget()
	}

	data := map[string]any{
		"form": map[string]any{
			"id":     f.cfg.id,
			"class":  f.containerClass(gridded),
			"region": f.cfg.id,
			"style":  f.containerStyle(gridded),
			"focus":  focus,
		},
		"fields": fields,
		"submit": submit,
		"errors": f.store.FormErrors(),
	}
	if reset != nil {
		data["reset"] = reset
	}

	out, err := f.templates.RenderTemplate(f.formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("form: render template: %w", err)
	}

	f.cfg.observer.Observe(ctx, f.cfg.id, children)

	elapsed := time.Since(start)
	f.logger.Debug("form rendered", "form", f.cfg.id, "fields", len(fields), "duration", elapsed)
	emit(ctx, f.cfg.hooks.OnRender, &Event{FormID: f.cfg.id, Errors: len(f.store.Errors()), Duration: elapsed})
	return []byte(out), nil
}

func (f *Form[T]) containerClass(gridded bool) string {
	if gridded {
		return "formkit formkit--grid"
	}
	return "formkit"
}

func (f *Form[T]) containerStyle(gridded bool) map[string]any {
	style := make(map[string]any, len(f.cssVars)+3)
	for name, value := range f.cssVars {
		style[name] = value
	}
	if gridded {
		style["display"] = "grid"
		if areas := f.cfg.layout.GridTemplateAreas; areas != "" {
			style["grid-template-areas"] = areas
		}
		if columns := f.cfg.layout.GridTemplateColumns; columns != "" {
			style["grid-template-columns"] = columns
		}
	}
	return style
}

// Submit validates the record. When it passes, onSubmit runs exactly once
// with the decoded record and Submit reports true. When it fails the field
// errors are replaced, onSubmit is skipped and Submit returns false with a
// nil error. Handler errors are kept as form-level errors and returned.
func (f *Form[T]) Submit(ctx context.Context) (bool, error) {
	if f.store == nil {
		return false, ErrUnmounted
	}
	start := time.Now()

	ok, err := f.store.Submit(ctx, func(ctx context.Context, values validation.Values) error {
		record, err := decodeRecord[T](values)
		if err != nil {
			return err
		}
		return f.onSubmit(ctx, record)
	})

	event := &Event{FormID: f.cfg.id, Errors: len(f.store.Errors()), Duration: time.Since(start)}
	switch {
	case err != nil:
		event.Outcome = OutcomeFailed
		f.logger.Warn("form submit handler failed", "form", f.cfg.id, "error", err)
	case ok:
		event.Outcome = OutcomeAccepted
		f.logger.Info("form submitted", "form", f.cfg.id)
	default:
		event.Outcome = OutcomeRejected
		f.logger.Debug("form submit rejected", "form", f.cfg.id, "errors", f.store.Errors().Fields())
	}
	emit(ctx, f.cfg.hooks.OnSubmit, event)

	if err != nil {
		return ok, fmt.Errorf("form: submit: %w", err)
	}
	return ok, nil
}

// Reset restores the defaults computed in New and clears every error.
// Errors only return on the next validation trigger.
func (f *Form[T]) Reset(ctx context.Context) error {
	if f.store == nil {
		return ErrUnmounted
	}
	f.store.Reset()
	f.logger.Debug("form reset", "form", f.cfg.id)
	emit(ctx, f.cfg.hooks.OnReset, &Event{FormID: f.cfg.id})
	return nil
}

// Change sets the value of one field.
func (f *Form[T]) Change(ctx context.Context, name string, value any) error {
	if err := f.check(name); err != nil {
		return err
	}
	if err := f.store.Change(ctx, name, value); err != nil {
		return fmt.Errorf("form: change %q: %w", name, err)
	}
	emit(ctx, f.cfg.hooks.OnChange, &Event{FormID: f.cfg.id, Field: name, Errors: f.fieldErrorCount(name)})
	return nil
}

// Blur marks one field as touched.
func (f *Form[T]) Blur(ctx context.Context, name string) error {
	if err := f.check(name); err != nil {
		return err
	}
	if err := f.store.Blur(ctx, name); err != nil {
		return fmt.Errorf("form: blur %q: %w", name, err)
	}
	emit(ctx, f.cfg.hooks.OnBlur, &Event{FormID: f.cfg.id, Field: name, Errors: f.fieldErrorCount(name)})
	return nil
}

// Bind returns the accessor for one field, the same value a FieldRenderer
// receives during Render.
func (f *Form[T]) Bind(ctx context.Context, name string) (state.Field, error) {
	if err := f.check(name); err != nil {
		return state.Field{}, err
	}
	return f.store.Bind(ctx, name), nil
}

// Values returns a copy of the current record. Empty after Unmount.
func (f *Form[T]) Values() validation.Values {
	if f.store == nil {
		return nil
	}
	return f.store.Values()
}

// Defaults returns a copy of the record computed in New.
func (f *Form[T]) Defaults() validation.Values {
	return f.defaults.Clone()
}

// Errors returns the current field errors in field order.
func (f *Form[T]) Errors() validation.FieldErrors {
	if f.store == nil {
		return nil
	}
	return f.store.Errors()
}

// FormErrors returns messages that are not attached to a field.
func (f *Form[T]) FormErrors() []string {
	if f.store == nil {
		return nil
	}
	return f.store.FormErrors()
}

// FocusTarget names the element to focus after a rejected submit.
func (f *Form[T]) FocusTarget() string {
	if f.store == nil {
		return ""
	}
	return f.store.FocusTarget()
}

// Unmount discards the state and releases the layout observer registration.
// Later events and renders return ErrUnmounted.
func (f *Form[T]) Unmount(ctx context.Context) {
	if f.store == nil {
		return
	}
	f.cfg.observer.Release(f.cfg.id)
	f.store = nil
	f.logger.Debug("form unmounted", "form", f.cfg.id)
	emit(ctx, f.cfg.hooks.OnUnmount, &Event{FormID: f.cfg.id})
}

func (f *Form[T]) check(name string) error {
	if f.store == nil {
		return ErrUnmounted
	}
	if _, ok := f.index[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (f *Form[T]) fieldErrorCount(name string) int {
	if f.store.ErrorFor(name) != "" {
		return 1
	}
	return 0
}

func (f *Form[T]) elementID(name string) string {
	return f.cfg.id + "-" + name
}

func decodeRecord[T any](values validation.Values) (T, error) {
	var out T
	switch target := any(&out).(type) {
	case *validation.Values:
		*target = values.Clone()
		return out, nil
	case *map[string]any:
		*target = map[string]any(values.Clone())
		return out, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, fmt.Errorf("form: configure decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(values)); err != nil {
		return out, fmt.Errorf("form: decode record: %w", err)
	}
	return out, nil
}
