package tabs

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-cms-bootstrap/internal/render"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/paragraphs-tabs-bootstrap.js
var clientScript []byte

const wrapperTemplate = "templates/wrapper.html"

// ScriptName is the file name the client behaviour is served under.
const ScriptName = "paragraphs-tabs-bootstrap.js"

// Templates exposes the embedded markup templates.
func Templates() fs.FS {
	return templateFS
}

// ClientScript returns the click-to-remember and live filter script.
func ClientScript() []byte {
	return clientScript
}

func defaultTemplates() interfaces.TemplateRenderer {
	return render.New(templateFS)
}

// Render assembles the view for req and renders the tabs markup. Empty
// navigation renders nothing.
func (f *Formatter) Render(ctx context.Context, req RenderRequest) (string, error) {
	view := f.View(ctx, req)
	if len(view.Navigation) == 0 && len(view.AddLinks) == 0 {
		return "", nil
	}
	out, err := f.markup.Render(wrapperTemplate, viewData(view))
	if err != nil {
		return "", fmt.Errorf("tabs: render wrapper: %w", err)
	}
	return out, nil
}

func viewData(view View) map[string]any {
	navigation := make([]map[string]any, 0, len(view.Navigation))
	for _, entry := range view.Navigation {
		navigation = append(navigation, map[string]any{
			"discriminator": entry.Discriminator,
			"label":         entry.Label,
			"image":         entry.Icon,
			"attributes":    entry.Attributes.String(),
		})
	}

	panels := make([]map[string]any, 0, len(view.Navigation))
	for _, panel := range view.OrderedPanels() {
		items := make([]map[string]any, 0, len(panel.Items))
		for _, item := range panel.Items {
			data := map[string]any{
				"payload":    item.Payload,
				"header":     item.Header,
				"footer":     item.Footer,
				"attributes": item.Attributes.String(),
			}
			if len(item.Operations) > 0 {
				var attrs Attributes
				attrs.AddClass("btn-group", "operation", panel.Discriminator)
				data["operations_attributes"] = attrs.String()
				data["operations"] = linkData(operationLinks(item.Operations))
			}
			items = append(items, data)
		}
		data := map[string]any{
			"discriminator": panel.Discriminator,
			"attributes":    panel.Attributes.String(),
			"items":         items,
		}
		if panel.AddLink != nil {
			data["add_link"] = linkData([]Link{*panel.AddLink})[0]
		}
		panels = append(panels, data)
	}

	return map[string]any{
		"field_name":             view.Host.Field,
		"title":                  view.Host.FieldLabel,
		"direction":              view.Direction,
		"vertical":               view.Settings.Vertical,
		"mode":                   string(view.Mode),
		"wrapper_attributes":     view.Wrapper.String(),
		"nav_wrapper_attributes": view.NavWrapper.String(),
		"content_attributes":     view.Content.String(),
		"navigation":             navigation,
		"panels":                 panels,
		"add_links":              linkData(view.AddLinks),
		"single_type":            view.SingleType,
	}
}

func operationLinks(ops []Operation) []Link {
	links := make([]Link, 0, len(ops))
	for _, op := range ops {
		links = append(links, op.Link)
	}
	return links
}

func linkData(links []Link) []map[string]any {
	out := make([]map[string]any, 0, len(links))
	for _, link := range links {
		out = append(out, map[string]any{
			"url":        link.URL,
			"label":      link.Label,
			"icon":       link.Icon,
			"image":      link.Image,
			"attributes": link.Attributes.String(),
		})
	}
	return out
}
