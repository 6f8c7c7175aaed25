package state

import (
	"fmt"
	"strings"
)

// Mode selects which user events trigger validation before a submit.
type Mode int

const (
	// ModeOnChange validates on every value change.
	ModeOnChange Mode = iota
	// ModeOnBlur validates when a field loses focus.
	ModeOnBlur
	// ModeOnSubmit only validates on submit. After a rejected submit, changes
	// re-validate the edited field so errors clear as the user fixes them.
	ModeOnSubmit
	// ModeAll validates on change and on blur.
	ModeAll
)

var modeNames = map[Mode]string{
	ModeOnChange: "onChange",
	ModeOnBlur:   "onBlur",
	ModeOnSubmit: "onSubmit",
	ModeAll:      "all",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a mode name, case-insensitively. An empty name maps to
// ModeOnChange.
func ParseMode(name string) (Mode, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ModeOnChange, nil
	}
	for mode, label := range modeNames {
		if strings.EqualFold(label, trimmed) {
			return mode, nil
		}
	}
	return ModeOnChange, fmt.Errorf("state: unknown validation mode %q", name)
}

func (m Mode) validatesOnChange() bool {
	return m == ModeOnChange || m == ModeAll
}

func (m Mode) validatesOnBlur() bool {
	return m == ModeOnBlur || m == ModeAll
}
