// Package state keeps the values, errors and interaction flags of a single
// form instance and binds them to a validation.Validator.
//
// A Store hands out per-field accessors (Bind) whose callbacks are scoped to
// one field name, wraps submit handlers so they only ever see a validated
// record (HandleSubmit), and restores the initial record on Reset.
package state
