package form

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/state"
)

// Validation triggers, re-exported from the state package.
const (
	ModeOnChange = state.ModeOnChange
	ModeOnBlur   = state.ModeOnBlur
	ModeOnSubmit = state.ModeOnSubmit
	ModeAll      = state.ModeAll
)

// Option configures a Form.
type Option func(*config)

type config struct {
	id          string
	layout      Layout
	resetButton bool
	submitLabel string
	resetLabel  string
	mode        state.Mode

	logger    *slog.Logger
	hooks     Hooks
	observer  LayoutObserver
	templates template.TemplateRenderer
	templFS   fs.FS
	theme     *theme.Selection
}

func defaultConfig() config {
	return config{
		id:          "formkit",
		submitLabel: "Submit",
		resetLabel:  "Reset",
		mode:        state.ModeOnChange,
		observer:    noopObserver{},
	}
}

// WithID sets the form element id. Field element ids derive from it.
func WithID(id string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.id = trimmed
		}
	}
}

// WithLayout places fields and actions on a CSS grid.
func WithLayout(layout Layout) Option {
	return func(cfg *config) {
		cfg.layout = layout
	}
}

// WithResetButton toggles the reset control.
func WithResetButton(enabled bool) Option {
	return func(cfg *config) {
		cfg.resetButton = enabled
	}
}

// WithSubmitLabel overrides the submit control text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithResetLabel overrides the reset control text.
func WithResetLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.resetLabel = trimmed
		}
	}
}

// WithMode selects when values are validated before submit.
func WithMode(mode state.Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// WithLogger sets the structured logger. Forms log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain the hooks.
func WithHooks(hooks Hooks) Option {
	return func(cfg *config) {
		cfg.hooks = cfg.hooks.Merge(hooks)
	}
}

// WithLayoutObserver registers the animation observer.
func WithLayoutObserver(observer LayoutObserver) Option {
	return func(cfg *config) {
		if observer != nil {
			cfg.observer = observer
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithTemplatesFS supplies template overrides. Files missing from files are
// served from the embedded bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templFS = files
	}
}

// WithTemplatesDir loads template overrides from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templFS = os.DirFS(path)
	}
}

// WithTheme resolves template paths and CSS variables from a go-theme
// selection. Theme templates must live in the configured template FS.
func WithTheme(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.theme = selection
	}
}
