package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the goldmark engine.
type Options struct {
	// Extensions lists goldmark extensions by name. Empty enables GFM,
	// linkify and task lists.
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML from the source.
	SafeMode bool
}

// Renderer converts Markdown into HTML. The engine is built once, so a single
// Renderer can be shared across goroutines.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a renderer for opts.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{engine: newEngine(opts)}
}

// Render converts source into HTML.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderString is Render for string input and output.
func (r *Renderer) RenderString(source string) (string, error) {
	out, err := r.Render([]byte(source))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func newEngine(opts Options) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// collectExtensions resolves extension names; unknown names are ignored.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
