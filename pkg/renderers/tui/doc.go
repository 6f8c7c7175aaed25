// Package tui drives a form from the terminal. Each field is prompted in
// order, the form is submitted, and only the fields that failed validation
// are asked again.
package tui
