package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formkit/pkg/render/template"
)

// Option configures the go-template adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the template extension appended to names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers helper functions or filters when the engine loads.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine wraps a go-template engine and adds the form filters.
type Engine struct {
	*gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either a base directory or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tpl",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	engineOpts := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
	}
	if cfg.baseDir != "" {
		engineOpts = append(engineOpts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		engineOpts = append(engineOpts, gotemplatepkg.WithFS(cfg.templates))
	}
	if len(cfg.templateFn) > 0 {
		engineOpts = append(engineOpts, gotemplatepkg.WithTemplateFunc(cfg.templateFn))
	}
	if len(cfg.globalData) > 0 {
		engineOpts = append(engineOpts, gotemplatepkg.WithGlobalData(cfg.globalData))
	}

	engine, err := gotemplatepkg.NewRenderer(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: create engine: %w", err)
	}
	registerDefaultFilters()

	return &Engine{Engine: engine}, nil
}

var filtersOnce sync.Once

// registerDefaultFilters installs the pongo2 filters form templates rely on.
// pongo2 keeps filters in a process-wide table, so they register once.
func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("classnames") {
			_ = pongo2.RegisterFilter("classnames", filterClassNames)
		}
		if !pongo2.FilterExists("styleattr") {
			_ = pongo2.RegisterFilter("styleattr", filterStyleAttr)
		}
	})
}

// filterClassNames joins the receiver and an optional parameter into a
// space separated class list, dropping blanks and duplicates.
func filterClassNames(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var parts []string
	collect := func(value *pongo2.Value) {
		if value == nil || value.IsNil() {
			return
		}
		rv := reflect.ValueOf(value.Interface())
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for idx := 0; idx < rv.Len(); idx++ {
				item := rv.Index(idx).Interface()
				if item == nil {
					continue
				}
				parts = append(parts, strings.Fields(fmt.Sprint(item))...)
			}
			return
		}
		parts = append(parts, strings.Fields(value.String())...)
	}
	collect(in)
	collect(param)

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return pongo2.AsValue(strings.Join(out, " ")), nil
}

// filterStyleAttr renders a map of CSS properties as a declaration list with
// keys in sorted order.
func filterStyleAttr(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	props, ok := in.Interface().(map[string]any)
	if !ok || len(props) == 0 {
		return pongo2.AsValue(""), nil
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	decls := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(fmt.Sprint(props[key]))
		if value == "" || props[key] == nil {
			continue
		}
		decls = append(decls, fmt.Sprintf("%s: %s", key, value))
	}
	return pongo2.AsValue(strings.Join(decls, "; ")), nil
}
