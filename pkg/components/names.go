package components

// Canonical component names registered by NewDefaultRegistry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameCheckbox = "checkbox"
)
