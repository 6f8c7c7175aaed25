package form

import "errors"

var (
	// ErrFieldNameRequired is returned when a field descriptor has no name.
	ErrFieldNameRequired = errors.New("form: field name is required")
	// ErrDuplicateField is returned when two descriptors share a name.
	ErrDuplicateField = errors.New("form: duplicate field name")
	// ErrUnknownField is returned when a field is not recognised by the
	// validator, or an event targets a field the form does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrValidatorRequired is returned when a form is built without a validator.
	ErrValidatorRequired = errors.New("form: validator is required")
	// ErrSubmitHandlerRequired is returned when a form is built without an
	// onSubmit callback.
	ErrSubmitHandlerRequired = errors.New("form: submit handler is required")
	// ErrUnmounted is returned by every call made after Unmount.
	ErrUnmounted = errors.New("form: form is unmounted")
)
