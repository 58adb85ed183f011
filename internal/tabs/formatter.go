package tabs

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// DefaultMaxDepth bounds nested tab rendering.
const DefaultMaxDepth = 20

// Host identifies the entity and field whose items are rendered.
type Host struct {
	EntityType string
	EntityID   string
	OwnerID    string
	Field      string
	FieldLabel string
	// Destination is the path add and operation links return to.
	Destination string
	// FieldPermissionType feeds the field_permissions add access mode.
	FieldPermissionType string
}

// RenderRequest is one render pass of a paragraphs field.
type RenderRequest struct {
	Host       Host
	Items      []Item
	Allowed    []AllowedType
	Account    interfaces.Account
	Preference Preference
}

// View is the fully decorated render model handed to templates.
type View struct {
	Result
	Host      Host
	Settings  Settings
	Direction string
	Mode      Mode
	ActiveTab string
	// Wrapper is the outer element; NavWrapper holds the buttons and
	// Content the panes.
	Wrapper    Attributes
	NavWrapper Attributes
	Content    Attributes
	// AddLinks is the add dropdown, or a single button when SingleType.
	AddLinks []Link
	// Aborted is set when the nesting limit stopped rendering.
	Aborted bool
}

// Renderable is implemented by field renderers.
type Renderable interface {
	View(ctx context.Context, req RenderRequest) View
	Render(ctx context.Context, req RenderRequest) (string, error)
}

// OperationAlterer may rewrite the operations of one item before display.
type OperationAlterer func(ops []Operation, itemID, itemType string) []Operation

// Formatter renders paragraphs fields as Bootstrap tabs.
type Formatter struct {
	settings    Settings
	links       LinkBuilder
	templates   interfaces.TemplateRenderer
	markup      interfaces.TemplateRenderer
	logger      interfaces.Logger
	accessMode  permissions.AccessMode
	operations  bool
	alterers    []OperationAlterer
	dialogWidth string
	maxDepth    int
}

var (
	_ Renderable   = (*Formatter)(nil)
	_ Configurable = (*Formatter)(nil)
)

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithLinks sets the URL builder for add and operation links.
func WithLinks(links LinkBuilder) FormatterOption {
	return func(f *Formatter) { f.links = links }
}

// WithTemplates sets the renderer used for header and footer text.
func WithTemplates(renderer interfaces.TemplateRenderer) FormatterOption {
	return func(f *Formatter) {
		if renderer != nil {
			f.templates = renderer
		}
	}
}

// WithLogger sets the formatter logger.
func WithLogger(logger interfaces.Logger) FormatterOption {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithAccessMode selects how add links are guarded.
func WithAccessMode(mode permissions.AccessMode) FormatterOption {
	return func(f *Formatter) { f.accessMode = mode }
}

// WithOperations enables the per-item operations block.
func WithOperations(enabled bool) FormatterOption {
	return func(f *Formatter) { f.operations = enabled }
}

// WithOperationAlterer registers a hook run over every item's operations.
func WithOperationAlterer(alterer OperationAlterer) FormatterOption {
	return func(f *Formatter) {
		if alterer != nil {
			f.alterers = append(f.alterers, alterer)
		}
	}
}

// WithDialogWidth sets the modal width used by dialog links.
func WithDialogWidth(width string) FormatterOption {
	return func(f *Formatter) {
		if strings.TrimSpace(width) != "" {
			f.dialogWidth = width
		}
	}
}

// WithMaxDepth bounds nested rendering.
func WithMaxDepth(depth int) FormatterOption {
	return func(f *Formatter) {
		if depth > 0 {
			f.maxDepth = depth
		}
	}
}

// NewFormatter constructs a formatter for settings.
func NewFormatter(settings Settings, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		settings:    settings,
		logger:      logging.NoOp(),
		accessMode:  permissions.AccessModeContent,
		dialogWidth: DefaultDialogWidth,
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.markup = defaultTemplates()
	if f.templates == nil {
		f.templates = f.markup
	}
	return f
}

func (f *Formatter) Settings() Settings        { return f.settings }
func (f *Formatter) Summary() []string         { return f.settings.Summary() }
func (f *Formatter) DefaultSettings() Settings { return DefaultSettings() }

// View builds the navigation and panels for req, resolves the active tab
// and decorates everything with attributes, links and header/footer text.
func (f *Formatter) View(ctx context.Context, req RenderRequest) View {
	host := req.Host
	logger := logging.WithFieldContext(f.logger, host.EntityType, host.EntityID, host.Field)
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}

	canOperate := !f.settings.HideOperations &&
		permissions.OperationAccess(req.Account, permissions.Entity{Type: host.EntityType, ID: host.EntityID, OwnerID: host.OwnerID}, host.Field)
	// Dropdown and single-type add links follow the add route's access rules
	// only; hidden line operations remove the in-panel add alone.
	canAdd := func(t AllowedType) bool {
		return permissions.AddAccess(req.Account, permissions.AddRequest{
			Mode:                f.accessMode,
			Bundle:              t.Discriminator,
			FieldName:           host.Field,
			FieldPermissionType: host.FieldPermissionType,
		})
	}

	result := Build(req.Items, req.Allowed, BuildOptions{
		HideEmpty:      f.settings.HideEmpty,
		HideOperations: f.settings.HideOperations,
		Permission:     func(Item) bool { return canOperate },
		AddPermission:  canAdd,
	})
	if result.Dropped > 0 {
		logger.Warn("tabs.render.dropped_items", "count", result.Dropped)
	}

	view := View{
		Result:    result,
		Host:      host,
		Settings:  f.settings,
		Direction: f.settings.Direction(),
		Mode:      f.settings.EffectiveMode(),
	}
	f.decorateContainers(&view)

	if f.DepthExceeded(ctx) {
		logger.Error("tabs.render.recursion", "depth", renderDepth(ctx), "max_depth", f.maxDepth)
		view.Aborted = true
		view.Navigation = nil
		view.Panels = map[string]Panel{}
		view.SingleType = false
		return view
	}

	view.ActiveTab, _ = view.ResolveActive(host.Field, req.Preference)

	addLinks := f.addLinks(logger, host, req.Allowed, canAdd)
	f.decorateNavigation(&view)
	f.decoratePanels(logger, &view, addLinks, canOperate)

	for _, allowed := range req.Allowed {
		if link, ok := addLinks[allowed.Discriminator]; ok {
			view.AddLinks = append(view.AddLinks, link)
		}
	}
	return view
}

func (f *Formatter) decorateContainers(view *View) {
	view.Wrapper.AddClass("paragraphs-tabs-bootstrap", "paragraphs-tabs-"+view.Direction)
	view.Wrapper.Set("data-field", view.Host.Field)
	view.NavWrapper.AddClass("paragraphs-bootstrap-tabs-wrapper")
	view.Content.AddClass("tab-content").Set("id", view.Host.Field)
	if f.settings.Vertical {
		view.NavWrapper.AddClass("col-3")
		view.Content.AddClass("col-9")
		view.Wrapper.AddClass("d-flex", "align-items-start", "vertical-tabs-list", f.settings.CustomClass)
	} else if f.settings.CustomClass != "" {
		view.Wrapper.AddClass(f.settings.CustomClass)
	}
}

func (f *Formatter) decorateNavigation(view *View) {
	for idx := range view.Navigation {
		entry := &view.Navigation[idx]
		attrs := NewAttributes(map[string]string{
			"role":              "tab",
			"type":              "button",
			"aria-selected":     "false",
			"data-bs-toggle":    string(view.Mode),
			"id":                HTMLID("nav-" + entry.Discriminator),
			"data-bs-target":    "#" + entry.Discriminator,
			"aria-controls":     entry.Discriminator,
			"data-group":        view.Host.Field,
			"data-bs-placement": "top",
			"title":             entry.Description,
		})
		attrs.AddClass("nav-link", "text-start", entry.Discriminator)
		if entry.Active {
			attrs.AddClass("active")
			attrs.Set("aria-selected", "true")
			attrs.Set("aria-current", "page")
		}
		entry.Attributes = attrs
	}
}

// addLinks returns the add link of every type the viewer may add, hidden
// empty types included. A lone allowed type gets a prominent button.
func (f *Formatter) addLinks(logger interfaces.Logger, host Host, allowed []AllowedType, canAdd func(AllowedType) bool) map[string]Link {
	links := map[string]Link{}
	if f.links == nil {
		return links
	}
	for _, t := range allowed {
		if !canAdd(t) {
			continue
		}
		url, err := f.links.AddURL(AddLinkRequest{
			ParagraphType: t.Discriminator,
			EntityType:    host.EntityType,
			EntityField:   host.Field,
			EntityID:      host.EntityID,
			Destination:   host.Destination,
		})
		if err != nil {
			logger.Warn("tabs.links.add_failed", "type", t.Discriminator, "error", err)
			continue
		}
		link := Link{URL: url, Label: labelOr(t), Image: t.Icon}
		link.Attributes.AddClass("dropdown-item")
		link.Attributes.Set("data-dialog-type", "modal")
		link.Attributes.Set("data-dialog-options", DialogOptions(f.dialogWidth))
		if len(allowed) == 1 {
			link.Attributes.Set("class", "btn btn-success")
			link.Image = ""
			link.Icon = "bi bi-plus"
		}
		links[t.Discriminator] = link
	}
	return links
}

func (f *Formatter) decoratePanels(logger interfaces.Logger, view *View, addLinks map[string]Link, canOperate bool) {
	labels := make(map[string]string, len(view.Navigation))
	for _, entry := range view.Navigation {
		labels[entry.Discriminator] = entry.Label
	}

	for _, entry := range view.Navigation {
		panel := view.Panels[entry.Discriminator]
		attrs := NewAttributes(map[string]string{
			"id":              panel.Discriminator,
			"role":            "tabpanel",
			"aria-labelledby": panel.Discriminator + "-tab",
		})
		attrs.AddClass("tab-pane", "fade")
		if panel.Active {
			attrs.AddClass("show", "active")
		}
		panel.Attributes = attrs

		if link, ok := addLinks[panel.Discriminator]; ok && canOperate && !panel.Empty {
			inPanel := Link{URL: link.URL, Label: "Add", Icon: "bi bi-plus"}
			inPanel.Attributes.AddClass("btn", "btn-success", "mt-3")
			panel.AddLink = &inPanel
			delete(addLinks, panel.Discriminator)
		}

		for idx := range panel.Items {
			item := &panel.Items[idx]
			item.Attributes = NewAttributes(map[string]string{"data-delta": strconv.Itoa(item.OrderIndex)})
			item.Attributes.AddClass("paragraph-item", "paragraphs-tab-content")
			if idx%2 == 1 {
				item.Attributes.AddClass("bg-light")
			}

			textContext := map[string]any{
				"paragraph_name":        labels[panel.Discriminator],
				"paragraph_type":        panel.Discriminator,
				"paragraph_id":          item.Identity,
				"paragraph_revision_id": item.RevisionID,
				"entity_type":           view.Host.EntityType,
				"entity_field":          view.Host.Field,
				"entity_id":             view.Host.EntityID,
			}
			item.Header = f.inlineText(logger, "header", f.settings.HeaderText, textContext)
			item.Footer = f.inlineText(logger, "footer", f.settings.FooterText, textContext)

			if item.ShowOperations && f.operations {
				item.Operations = f.itemOperations(logger, item.Identity, panel.Discriminator, view.Host.Destination)
			}
		}
		view.Panels[entry.Discriminator] = panel
	}
}

func (f *Formatter) inlineText(logger interfaces.Logger, slot, source string, data map[string]any) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	out, err := f.templates.RenderString(source, data)
	if err != nil {
		logger.Warn("tabs.render.text_failed", "slot", slot, "error", err)
		return ""
	}
	return out
}

var operationSpecs = []struct {
	name, route, label, icon, classes string
}{
	{"view", RouteParagraphView, "View", "bi bi-eye", "use-ajax btn btn-success"},
	{"edit", RouteParagraphEdit, "Edit", "bi bi-pencil-square", "btn btn-warning"},
	{"duplicate", RouteParagraphDuplicate, "Duplicate", "bi bi-files", "btn btn-primary"},
	{"delete", RouteParagraphDelete, "Remove", "bi bi-trash", "btn btn-danger"},
}

func (f *Formatter) itemOperations(logger interfaces.Logger, itemID, itemType, destination string) []Operation {
	if f.links == nil {
		return nil
	}
	ops := make([]Operation, 0, len(operationSpecs))
	for _, spec := range operationSpecs {
		url, err := f.links.OperationURL(spec.route, itemID, destination)
		if err != nil {
			logger.Warn("tabs.links.operation_failed", "operation", spec.name, "item", itemID, "error", err)
			continue
		}
		op := Operation{Name: spec.name, Link: Link{URL: url, Label: spec.label, Icon: spec.icon}}
		op.Attributes.AddClass(spec.classes)
		op.Attributes.Set("data-dialog-type", "dialog")
		op.Attributes.Set("data-dialog-options", DialogOptions(f.dialogWidth))
		ops = append(ops, op)
	}
	for _, alter := range f.alterers {
		ops = alter(ops, itemID, itemType)
	}
	return ops
}

func labelOr(t AllowedType) string {
	if strings.TrimSpace(t.Label) != "" {
		return t.Label
	}
	return t.Discriminator
}

type depthKey struct{}

// NestedContext returns ctx marked one rendering level deeper. Item payload
// renderers that render tabs themselves must pass it down.
func NestedContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, depthKey{}, renderDepth(ctx)+1)
}

func renderDepth(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	depth, _ := ctx.Value(depthKey{}).(int)
	return depth
}

// DepthExceeded reports whether ctx is already nested as deep as the
// formatter renders. Nested field renderers check it before loading items.
func (f *Formatter) DepthExceeded(ctx context.Context) bool {
	return renderDepth(ctx) >= f.maxDepth
}
