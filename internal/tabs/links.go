package tabs

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route names resolved through the link builder.
const (
	RouteParagraphAdd       = "paragraphs.add"
	RouteParagraphView      = "paragraph.view"
	RouteParagraphEdit      = "paragraph.edit"
	RouteParagraphDuplicate = "paragraph.duplicate"
	RouteParagraphDelete    = "paragraph.delete"

	DefaultRouteGroup = "paragraphs"
)

// AddLinkRequest addresses the add form for one type on one host field.
type AddLinkRequest struct {
	ParagraphType string
	EntityType    string
	EntityField   string
	EntityID      string
	Destination   string
}

// LinkBuilder produces the URLs behind add and operation links.
type LinkBuilder interface {
	AddURL(req AddLinkRequest) (string, error)
	OperationURL(route, paragraphID, destination string) (string, error)
}

// DefaultRouteConfig returns a go-urlkit configuration with the routes the
// formatter links to, mounted under baseURL.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    DefaultRouteGroup,
			BaseURL: baseURL,
			Paths: map[string]string{
				RouteParagraphAdd:       "/paragraphs/add/:paragraph_type/:entity_type/:entity_field/:entity_id",
				RouteParagraphView:      "/paragraphs/:paragraph",
				RouteParagraphEdit:      "/paragraphs/:paragraph/edit",
				RouteParagraphDuplicate: "/paragraphs/:paragraph/duplicate",
				RouteParagraphDelete:    "/paragraphs/:paragraph/delete",
			},
		}},
	}
}

// URLKitLinks resolves links through a go-urlkit route group. Group may be a
// dotted path into nested groups.
type URLKitLinks struct {
	manager *urlkit.RouteManager
	group   string

	mu     sync.Mutex
	cached *urlkit.Group
}

// NewURLKitLinks wraps manager; an empty group selects DefaultRouteGroup.
func NewURLKitLinks(manager *urlkit.RouteManager, group string) *URLKitLinks {
	group = strings.TrimSpace(group)
	if group == "" {
		group = DefaultRouteGroup
	}
	return &URLKitLinks{manager: manager, group: group}
}

func (l *URLKitLinks) AddURL(req AddLinkRequest) (string, error) {
	return l.build(RouteParagraphAdd, map[string]any{
		"paragraph_type": req.ParagraphType,
		"entity_type":    req.EntityType,
		"entity_field":   req.EntityField,
		"entity_id":      req.EntityID,
	}, req.Destination)
}

func (l *URLKitLinks) OperationURL(route, paragraphID, destination string) (string, error) {
	return l.build(route, map[string]any{"paragraph": paragraphID}, destination)
}

func (l *URLKitLinks) build(route string, params map[string]any, destination string) (string, error) {
	group, err := l.resolveGroup()
	if err != nil {
		return "", err
	}
	builder, err := routeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	if destination != "" {
		builder.WithQuery("destination", destination)
	}
	return builder.Build()
}

func (l *URLKitLinks) resolveGroup() (*urlkit.Group, error) {
	if l == nil || l.manager == nil {
		return nil, fmt.Errorf("tabs: route manager not configured")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached, nil
	}

	parts := strings.Split(l.group, ".")
	group, err := rootGroup(l.manager, parts[0])
	for _, part := range parts[1:] {
		if err != nil {
			break
		}
		group, err = childGroup(group, part)
	}
	if err != nil {
		return nil, err
	}
	l.cached = group
	return group, nil
}

// go-urlkit panics on unknown names; the helpers below turn that into errors.

func rootGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("tabs: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func childGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("tabs: child route group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}

func routeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("tabs: route %q not found: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

// DialogOptions encodes the modal dialog options attached to add and
// operation links.
func DialogOptions(width string) string {
	if strings.TrimSpace(width) == "" {
		width = DefaultDialogWidth
	}
	encoded, err := json.Marshal(map[string]string{"width": width})
	if err != nil {
		return `{"width":"80%"}`
	}
	return string(encoded)
}

// DefaultDialogWidth is the modal width used when none is configured.
const DefaultDialogWidth = "80%"
