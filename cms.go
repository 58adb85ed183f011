package cmsbootstrap

import (
	"context"
	"net/http"

	"github.com/goliatone/go-cms-bootstrap/commands"
	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/di"
	bootstraphttp "github.com/goliatone/go-cms-bootstrap/internal/http"
	"github.com/goliatone/go-cms-bootstrap/internal/mount"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// ParagraphService exports the paragraphs service contract for consumers of
// the cmsbootstrap package.
type ParagraphService = paragraphs.Service

// ParagraphType exports the paragraph type definition.
type ParagraphType = paragraphs.ParagraphType

// CarouselService exports the carousel service contract.
type CarouselService = carousel.Service

// TabsFormatter exports the Bootstrap tabs formatter.
type TabsFormatter = *tabs.Formatter

// MountService exports the front-end mount service.
type MountService = *mount.Service

// HTTPOption exports the HTTP endpoint options.
type HTTPOption = bootstraphttp.Option

// Module represents the top level bootstrap runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a bootstrap module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Paragraphs returns the paragraphs service, nil when paragraph tabs are disabled.
func (m *Module) Paragraphs() ParagraphService {
	return m.container.ParagraphService()
}

// Carousel returns the carousel service, nil when the carousel is disabled.
func (m *Module) Carousel() CarouselService {
	return m.container.CarouselService()
}

// Tabs returns the formatter rendering paragraph fields as Bootstrap tabs.
func (m *Module) Tabs() TabsFormatter {
	return m.container.TabsFormatter()
}

// Mount returns the front-end mount service, nil when disabled.
func (m *Module) Mount() MountService {
	return m.container.MountService()
}

// Logger returns the module logger provider.
func (m *Module) Logger() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// RegisterRoutes attaches the HTTP endpoints of every enabled feature to mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux, opts ...HTTPOption) error {
	return m.container.HTTPAPI(opts...).Register(mux)
}

// RegisterCommands builds the command handlers and hands them to the
// registry and dispatcher in opts.
func (m *Module) RegisterCommands(opts commands.RegistrationOptions) (*commands.RegistrationResult, error) {
	return commands.RegisterContainerCommands(m.container, opts)
}

// WatchCarouselSettings logs carousel settings changes until ctx is done.
func (m *Module) WatchCarouselSettings(ctx context.Context) error {
	return m.container.WatchCarouselSettings(ctx)
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	return m.container.Close()
}
