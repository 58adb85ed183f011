package render

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// Engine renders pongo2 (Django/Twig syntax) templates. Named templates are
// read from an fs.FS and compiled once; inline strings are cached by source.
type Engine struct {
	fsys fs.FS

	mu       sync.RWMutex
	named    map[string]*pongo2.Template
	inline   map[string]*pongo2.Template
	maxCache int
}

var _ interfaces.TemplateRenderer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithInlineCacheSize bounds the number of compiled inline templates kept.
// Zero disables the bound.
func WithInlineCacheSize(size int) Option {
	return func(e *Engine) {
		if size >= 0 {
			e.maxCache = size
		}
	}
}

// New returns an engine reading named templates from fsys. fsys may be nil
// when only RenderString is used.
func New(fsys fs.FS, opts ...Option) *Engine {
	engine := &Engine{
		fsys:     fsys,
		named:    map[string]*pongo2.Template{},
		inline:   map[string]*pongo2.Template{},
		maxCache: 256,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Render executes the template stored at name.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return tpl.Execute(pongo2.Context(data))
}

// RenderString compiles and executes templateContent.
func (e *Engine) RenderString(templateContent string, data map[string]any) (string, error) {
	if strings.TrimSpace(templateContent) == "" {
		return "", nil
	}
	e.mu.RLock()
	tpl, ok := e.inline[templateContent]
	e.mu.RUnlock()
	if !ok {
		compiled, err := pongo2.FromString(templateContent)
		if err != nil {
			return "", fmt.Errorf("render: compile inline template: %w", err)
		}
		e.mu.Lock()
		if e.maxCache > 0 && len(e.inline) >= e.maxCache {
			clear(e.inline)
		}
		e.inline[templateContent] = compiled
		e.mu.Unlock()
		tpl = compiled
	}
	return tpl.Execute(pongo2.Context(data))
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.named[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}
	if e.fsys == nil {
		return nil, fmt.Errorf("render: no template source for %q", name)
	}
	source, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("render: read template %q: %w", name, err)
	}
	compiled, err := pongo2.FromString(string(source))
	if err != nil {
		return nil, fmt.Errorf("render: compile template %q: %w", name, err)
	}
	e.mu.Lock()
	e.named[name] = compiled
	e.mu.Unlock()
	return compiled, nil
}
