package interfaces

// TemplateRenderer renders named templates and ad-hoc template strings. The
// default implementation is backed by pongo2 so header/footer snippets keep the
// `{{ variable }}` syntax site builders already use.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
	RenderString(templateContent string, data map[string]any) (string, error)
}
