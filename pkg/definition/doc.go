// Package definition loads declarative form documents (JSON or YAML) and
// builds forms from them. A document carries the field list, the layout, the
// action settings and the object schema used for validation.
package definition
