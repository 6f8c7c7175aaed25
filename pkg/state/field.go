package state

// Field is the bound accessor a store hands to a field renderer. The
// callbacks are scoped to Name: calling OnChange only updates that field.
type Field struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched,omitempty"`
	Dirty   bool   `json:"dirty,omitempty"`

	OnChange func(value any) `json:"-"`
	OnBlur   func()          `json:"-"`
	// Ref registers the element id the control rendered for this field.
	Ref func(id string) `json:"-"`
}

// Invalid reports whether the field currently carries an error.
func (f Field) Invalid() bool {
	return f.Error != ""
}

// StringValue renders Value for text controls. Nil becomes the empty string.
func (f Field) StringValue() string {
	return stringify(f.Value)
}
