// Package template defines the renderer-agnostic template seam used by forms.
// The gotemplate subpackage provides the default pongo2-backed implementation.
package template
