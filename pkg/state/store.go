package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrValidatorRequired is returned when a store is built without a validator.
	ErrValidatorRequired = errors.New("state: validator is required")
	// ErrUnknownField is returned when an event targets a field the store was
	// not configured with.
	ErrUnknownField = errors.New("state: unknown field")
)

// SubmitHandler receives the validated record.
type SubmitHandler func(ctx context.Context, values validation.Values) error

// Option configures a Store.
type Option func(*Store)

// WithMode sets the validation trigger. Defaults to ModeOnChange.
func WithMode(mode Mode) Option {
	return func(s *Store) {
		s.mode = mode
	}
}

// WithFields declares the field names the store accepts events for, in render
// order. Without it any name is accepted and error ordering follows the
// validator.
func WithFields(names ...string) Option {
	return func(s *Store) {
		s.order = append([]string(nil), names...)
	}
}

// WithLogger receives errors raised inside accessor callbacks, which have no
// return value of their own.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the values, errors and interaction flags of one form instance.
// It is not safe for concurrent use; callers own a store exclusively.
type Store struct {
	validator validation.Validator
	mode      Mode
	order     []string
	known     map[string]struct{}
	logger    *slog.Logger

	defaults   validation.Values
	values     validation.Values
	errors     validation.FieldErrors
	formErrors []string
	touched    map[string]bool
	refs       map[string]string

	submitted   bool
	submitCount int
}

// New binds a store to the initial record and the validator. The defaults are
// copied so later edits never leak back into them.
func New(defaults validation.Values, validator validation.Validator, opts ...Option) (*Store, error) {
	if validator == nil {
		return nil, ErrValidatorRequired
	}

	s := &Store{
		validator: validator,
		mode:      ModeOnChange,
		defaults:  defaults.Clone(),
		touched:   make(map[string]bool),
		refs:      make(map[string]string),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if len(s.order) > 0 {
		s.known = make(map[string]struct{}, len(s.order))
		for _, name := range s.order {
			s.known[name] = struct{}{}
		}
	}

	s.values = s.defaults.Clone()
	return s, nil
}

// Mode reports the configured validation trigger.
func (s *Store) Mode() Mode {
	return s.mode
}

// Bind returns the accessor for name. The callbacks capture ctx and are only
// valid while the store is alive. Errors they hit, such as an unknown name,
// go to the store logger.
func (s *Store) Bind(ctx context.Context, name string) Field {
	value, _ := s.Value(name)
	field := Field{
		Name:    name,
		ID:      s.refs[name],
		Value:   value,
		Error:   s.ErrorFor(name),
		Touched: s.touched[name],
		Dirty:   s.Dirty(name),
	}
	field.OnChange = func(value any) {
		if err := s.Change(ctx, name, value); err != nil {
			s.logger.Warn("field change rejected", "field", name, "error", err)
		}
	}
	field.OnBlur = func() {
		if err := s.Blur(ctx, name); err != nil {
			s.logger.Warn("field blur rejected", "field", name, "error", err)
		}
	}
	field.Ref = func(id string) {
		s.Ref(name, id)
	}
	return field
}

// Change records a new value for name and re-validates that field when the
// mode asks for it. Only name's error entry is updated.
func (s *Store) Change(ctx context.Context, name string, value any) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.values[name] = value
	if s.mode.validatesOnChange() || s.submitted {
		s.validateField(ctx, name)
	}
	return nil
}

// Blur marks name as touched and validates it in blur modes.
func (s *Store) Blur(ctx context.Context, name string) error {
	if err := s.check(name); err != nil {
		return err
	}
	s.touched[name] = true
	if s.mode.validatesOnBlur() {
		s.validateField(ctx, name)
	}
	return nil
}

// Ref records the element id rendered for name.
func (s *Store) Ref(name, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		delete(s.refs, name)
		return
	}
	s.refs[name] = id
}

// Value returns the current value for name.
func (s *Store) Value(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns a copy of the current record.
func (s *Store) Values() validation.Values {
	return s.values.Clone()
}

// Defaults returns a copy of the record the store was created with.
func (s *Store) Defaults() validation.Values {
	return s.defaults.Clone()
}

// Errors returns the current field errors in field order.
func (s *Store) Errors() validation.FieldErrors {
	if len(s.errors) == 0 {
		return nil
	}
	out := append(validation.FieldErrors(nil), s.errors...)
	s.sortErrors(out)
	return out
}

// ErrorFor returns the message attached to name, or "".
func (s *Store) ErrorFor(name string) string {
	if item, ok := s.errors.For(name); ok {
		return item.Message
	}
	return ""
}

// FormErrors returns messages that are not attached to a field.
func (s *Store) FormErrors() []string {
	return append([]string(nil), s.formErrors...)
}

// SetFormErrors replaces the form-level messages. Blank entries are dropped.
func (s *Store) SetFormErrors(messages ...string) {
	s.formErrors = s.formErrors[:0]
	for _, msg := range messages {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			s.formErrors = append(s.formErrors, trimmed)
		}
	}
}

// Touched reports whether name has been blurred since the last reset.
func (s *Store) Touched(name string) bool {
	return s.touched[name]
}

// Dirty reports whether name differs from its default.
func (s *Store) Dirty(name string) bool {
	current, hasCurrent := s.values[name]
	initial, hasInitial := s.defaults[name]
	if hasCurrent != hasInitial {
		return true
	}
	return !reflect.DeepEqual(current, initial)
}

// IsDirty reports whether any field differs from its default.
func (s *Store) IsDirty() bool {
	for name := range s.values {
		if s.Dirty(name) {
			return true
		}
	}
	for name := range s.defaults {
		if s.Dirty(name) {
			return true
		}
	}
	return false
}

// SubmitCount counts submit attempts since the last reset.
func (s *Store) SubmitCount() int {
	return s.submitCount
}

// Validate runs the validator over the whole record and replaces all errors
// with the result. Errors without a field become form-level messages.
func (s *Store) Validate(ctx context.Context) (validation.Values, validation.FieldErrors) {
	validated, errs := s.validator.Validate(ctx, s.values.Clone())

	s.errors = nil
	var messages []string
	for _, item := range errs {
		if item.Field == "" {
			messages = append(messages, item.Message)
			continue
		}
		s.errors = append(s.errors, item)
	}
	s.SetFormErrors(messages...)

	if len(errs) > 0 {
		out := append(validation.FieldErrors(nil), errs...)
		s.sortErrors(out)
		return nil, out
	}
	return validated, nil
}

// HandleSubmit wraps fn so it only runs with a validated record.
func (s *Store) HandleSubmit(fn SubmitHandler) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		return s.Submit(ctx, fn)
	}
}

// Submit validates the record and calls fn once when it passes. A rejected
// submit returns false and a nil error; the store stays editable. A handler
// error is stored as a form-level message and returned.
func (s *Store) Submit(ctx context.Context, fn SubmitHandler) (bool, error) {
	s.submitted = true
	s.submitCount++
	s.formErrors = nil

	validated, errs := s.Validate(ctx)
	if len(errs) > 0 {
		for _, item := range errs {
			if item.Field != "" {
				s.touched[item.Field] = true
			}
		}
		return false, nil
	}
	if fn == nil {
		return true, nil
	}
	if err := fn(ctx, validated); err != nil {
		s.applyHandlerError(err)
		return true, fmt.Errorf("state: submit handler: %w", err)
	}
	return true, nil
}

// applyHandlerError keeps handler failures visible. FieldErrors naming known
// fields land on those fields; everything else becomes form-level.
func (s *Store) applyHandlerError(err error) {
	errs, ok := validation.AsFieldErrors(err)
	if !ok {
		s.SetFormErrors(err.Error())
		return
	}
	var messages []string
	for _, item := range errs {
		if item.Field == "" || s.check(item.Field) != nil {
			messages = append(messages, item.Message)
			continue
		}
		s.errors = s.errors.With(item)
		s.touched[item.Field] = true
	}
	s.sortErrors(s.errors)
	s.SetFormErrors(messages...)
}

// Reset restores the defaults and clears errors and interaction flags.
func (s *Store) Reset() {
	s.values = s.defaults.Clone()
	s.errors = nil
	s.formErrors = nil
	s.touched = make(map[string]bool)
	s.submitted = false
	s.submitCount = 0
}

// FocusTarget names the element to focus after a rejected submit: the
// registered id of the first invalid field in field order, falling back to
// the field name. Empty when there are no errors.
func (s *Store) FocusTarget() string {
	errs := s.Errors()
	if len(errs) == 0 {
		return ""
	}
	name := errs[0].Field
	if id, ok := s.refs[name]; ok {
		return id
	}
	return name
}

func (s *Store) check(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownField)
	}
	if s.known == nil {
		return nil
	}
	if _, ok := s.known[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (s *Store) validateField(ctx context.Context, name string) {
	_, errs := s.validator.Validate(ctx, s.values.Clone())
	if item, ok := errs.For(name); ok {
		s.errors = s.errors.With(item)
		return
	}
	s.errors = s.errors.Without(name)
}

func (s *Store) sortErrors(errs validation.FieldErrors) {
	if len(s.order) == 0 {
		return
	}
	rank := make(map[string]int, len(s.order))
	for idx, name := range s.order {
		rank[name] = idx
	}
	sort.SliceStable(errs, func(i, j int) bool {
		ri, iok := rank[errs[i].Field]
		rj, jok := rank[errs[j].Field]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
