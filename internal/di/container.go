package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	bootstraphttp "github.com/goliatone/go-cms-bootstrap/internal/http"
	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/logging/console"
	"github.com/goliatone/go-cms-bootstrap/internal/logging/gologger"
	"github.com/goliatone/go-cms-bootstrap/internal/markdown"
	"github.com/goliatone/go-cms-bootstrap/internal/mount"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/internal/runtimeconfig"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/pkg/activity"
	"github.com/goliatone/go-cms-bootstrap/pkg/activity/usersink"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// ActivityChannel is stamped on events emitted by bootstrap services.
const ActivityChannel = "bootstrap"

const defaultSQLiteDSN = "file::memory:?cache=shared"

// Container wires the bootstrap services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	activitySink    interfaces.ActivitySink
	activityHooks   activity.Hooks
	activityEmitter *activity.Emitter

	paragraphRepo        paragraphs.ParagraphRepository
	carouselItemRepo     carousel.ItemRepository
	carouselSettingsRepo carousel.SettingsRepository
	fileStore            carousel.FileStore

	paragraphTypes []paragraphs.ParagraphType
	allowedTypes   map[string][]string
	typeRegistry   *paragraphs.TypeRegistry
	markdown       *markdown.Renderer
	templates      interfaces.TemplateRenderer
	links          tabs.LinkBuilder
	routeManager   *urlkit.RouteManager

	paragraphSvc paragraphs.Service
	carouselSvc  carousel.Service
	formatter    *tabs.Formatter
	mountSvc     *mount.Service
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies the database used when storage is bun-backed. The
// caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithActivitySink forwards activity events to a go-users compatible sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithActivityHooks appends hooks receiving activity events.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		for _, hook := range hooks {
			if hook != nil {
				c.activityHooks = append(c.activityHooks, hook)
			}
		}
	}
}

// WithFileStore sets the store resolving carousel image ids.
func WithFileStore(store carousel.FileStore) Option {
	return func(c *Container) {
		c.fileStore = store
	}
}

// WithParagraphTypes registers paragraph types at construction.
func WithParagraphTypes(defs ...paragraphs.ParagraphType) Option {
	return func(c *Container) {
		c.paragraphTypes = append(c.paragraphTypes, defs...)
	}
}

// WithAllowedTypes restricts field to the given bundles.
func WithAllowedTypes(field string, bundles ...string) Option {
	return func(c *Container) {
		c.allowedTypes[field] = append(c.allowedTypes[field], bundles...)
	}
}

// WithTemplates overrides the renderer shared by paragraphs, carousel and tabs.
func WithTemplates(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.templates = renderer
	}
}

// WithLinkBuilder overrides the go-urlkit link builder of the formatter.
func WithLinkBuilder(links tabs.LinkBuilder) Option {
	return func(c *Container) {
		c.links = links
	}
}

// WithParagraphService overrides the paragraphs service.
func WithParagraphService(svc paragraphs.Service) Option {
	return func(c *Container) {
		c.paragraphSvc = svc
	}
}

// WithCarouselService overrides the carousel service.
func WithCarouselService(svc carousel.Service) Option {
	return func(c *Container) {
		c.carouselSvc = svc
	}
}

// NewContainer validates cfg and builds the enabled services.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		allowedTypes: map[string][]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureActivity()

	if err := c.configureParagraphs(); err != nil {
		c.closeOwnedDB()
		return nil, err
	}
	c.configureCarousel()
	if err := c.configureMount(); err != nil {
		c.closeOwnedDB()
		return nil, err
	}

	c.logger.Info("bootstrap.container.ready",
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"paragraph_tabs", c.paragraphSvc != nil,
		"carousel", c.carouselSvc != nil,
		"mount", c.mountSvc != nil,
	)
	return c, nil
}

// configureLogger selects the provider named by the logging config. With the
// logger feature off and no injected provider, module loggers are no-ops.
func (c *Container) configureLogger() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
		case "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     c.Config.Logging.Level,
				Format:    c.Config.Logging.Format,
				AddSource: c.Config.Logging.AddSource,
				Focus:     c.Config.Logging.Focus,
			})
			if err != nil {
				return err
			}
			c.loggerProvider = provider
		default:
			level, _ := console.ParseLevel(c.Config.Logging.Level)
			c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "bootstrap.di")
	return nil
}

// configureStorage opens the configured database unless one was injected and
// makes sure the bootstrap tables exist.
func (c *Container) configureStorage() error {
	if c.bunDB == nil && !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		return nil
	}
	if c.bunDB == nil {
		db, err := openDB(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	ctx := context.Background()
	if err := paragraphs.CreateSchema(ctx, c.bunDB); err != nil {
		c.closeOwnedDB()
		return fmt.Errorf("di: create paragraphs schema: %w", err)
	}
	if err := carousel.CreateSchema(ctx, c.bunDB); err != nil {
		c.closeOwnedDB()
		return fmt.Errorf("di: create carousel schema: %w", err)
	}
	return nil
}

func openDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch strings.ToLower(strings.TrimSpace(cfg.Dialect)) {
	case "postgres":
		if dsn == "" {
			return nil, errors.New("di: postgres storage requires a dsn")
		}
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("bootstrap.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		c.paragraphRepo = paragraphs.NewMemoryParagraphRepository()
		c.carouselItemRepo = carousel.NewMemoryItemRepository()
		c.carouselSettingsRepo = carousel.NewMemorySettingsRepository()
		return
	}

	if c.cacheService != nil && c.keySerializer != nil {
		c.paragraphRepo = paragraphs.NewBunParagraphRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.carouselItemRepo = carousel.NewBunItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.paragraphRepo = paragraphs.NewBunParagraphRepository(c.bunDB)
		c.carouselItemRepo = carousel.NewBunItemRepository(c.bunDB)
	}
	c.carouselSettingsRepo = carousel.NewBunSettingsRepository(c.bunDB)
}

func (c *Container) configureActivity() {
	hooks := activity.Hooks{}
	if c.activitySink != nil {
		hooks = append(hooks, usersink.Hook{Sink: c.activitySink})
	}
	hooks = append(hooks, c.activityHooks...)
	c.activityEmitter = activity.NewEmitter(hooks, activity.Config{
		Enabled: c.Config.Features.Activity,
		Channel: ActivityChannel,
	})
}

func (c *Container) configureParagraphs() error {
	if !c.Config.Features.ParagraphTabs {
		return nil
	}

	c.typeRegistry = paragraphs.NewTypeRegistry()
	for _, def := range c.paragraphTypes {
		if err := c.typeRegistry.Register(def); err != nil {
			return fmt.Errorf("di: register paragraph type %q: %w", def.Bundle, err)
		}
	}
	for field, bundles := range c.allowedTypes {
		c.typeRegistry.AllowOnField(field, bundles...)
	}

	if c.markdown == nil {
		c.markdown = markdown.NewRenderer(markdown.Options{SafeMode: true})
	}

	if c.paragraphSvc == nil {
		opts := []paragraphs.ServiceOption{
			paragraphs.WithLogger(logging.ParagraphsLogger(c.loggerProvider)),
			paragraphs.WithMarkdown(c.markdown),
			paragraphs.WithActivityEmitter(c.activityEmitter),
			paragraphs.WithNestedRenderer(c.renderNestedField),
		}
		if c.templates != nil {
			opts = append(opts, paragraphs.WithTemplates(c.templates))
		}
		c.paragraphSvc = paragraphs.NewService(c.paragraphRepo, c.typeRegistry, opts...)
	} else {
		c.typeRegistry = c.paragraphSvc.Types()
	}

	if c.links == nil {
		routes := c.Config.Routes.Config
		if routes == nil {
			routes = tabs.DefaultRouteConfig("")
		}
		c.routeManager = urlkit.NewRouteManager(routes)
		c.links = tabs.NewURLKitLinks(c.routeManager, c.Config.Routes.Group)
	}

	tabsCfg := c.Config.Tabs
	formatterOpts := []tabs.FormatterOption{
		tabs.WithLinks(c.links),
		tabs.WithLogger(logging.TabsLogger(c.loggerProvider)),
		tabs.WithAccessMode(permissions.ParseAccessMode(tabsCfg.AccessMode)),
		tabs.WithOperations(tabsCfg.Operations),
		tabs.WithDialogWidth(tabsCfg.DialogWidth),
		tabs.WithMaxDepth(tabsCfg.MaxDepth),
	}
	if c.templates != nil {
		formatterOpts = append(formatterOpts, tabs.WithTemplates(c.templates))
	}
	c.formatter = tabs.NewFormatter(c.TabsSettings(), formatterOpts...)
	return nil
}

// renderNestedField renders a paragraph field stored on another paragraph
// with the container formatter. Items are not loaded once ctx is nested as
// deep as the formatter renders, so the formatter aborts and logs instead.
func (c *Container) renderNestedField(ctx context.Context, ref paragraphs.FieldRef) (string, error) {
	if c.formatter == nil || c.paragraphSvc == nil {
		return "", nil
	}
	account := permissions.AccountFromContext(ctx)
	if account == nil {
		account = permissions.Anonymous()
	}
	req := tabs.RenderRequest{
		Host:    tabs.Host{EntityType: ref.EntityType, EntityID: ref.EntityID, Field: ref.Field},
		Allowed: c.paragraphSvc.Types().Allowed(ref.Field),
		Account: account,
	}
	if !c.formatter.DepthExceeded(ctx) {
		items, err := c.paragraphSvc.Items(ctx, ref)
		if err != nil {
			return "", err
		}
		req.Items = items
	}
	return c.formatter.Render(ctx, req)
}

// TabsSettings converts the configured tabs defaults into formatter settings.
func (c *Container) TabsSettings() tabs.Settings {
	cfg := c.Config.Tabs
	return tabs.Settings{
		Vertical:       cfg.Vertical,
		Mode:           tabs.ParseMode(cfg.Mode),
		HideEmpty:      cfg.HideEmpty,
		HeaderText:     cfg.HeaderText,
		FooterText:     cfg.FooterText,
		CustomClass:    cfg.CustomClass,
		HideOperations: cfg.HideOperations,
	}
}

func (c *Container) configureCarousel() {
	if !c.Config.Features.Carousel || c.carouselSvc != nil {
		return
	}
	if c.fileStore == nil {
		c.fileStore = carousel.NewMemoryFileStore()
	}

	cfg := c.Config.Carousel
	opts := []carousel.ServiceOption{
		carousel.WithLogger(logging.CarouselLogger(c.loggerProvider)),
		carousel.WithFileStore(c.fileStore),
		carousel.WithURLBuilder(carousel.URLBuilder{Base: cfg.FilesBase, Styles: cfg.ImageStyles}),
		carousel.WithDefaults(c.CarouselDefaults()),
		carousel.WithActivityEmitter(c.activityEmitter),
	}
	if c.templates != nil {
		opts = append(opts, carousel.WithTemplates(c.templates))
	}
	c.carouselSvc = carousel.NewService(c.carouselItemRepo, c.carouselSettingsRepo, opts...)
}

// CarouselDefaults converts the configured carousel defaults into settings.
func (c *Container) CarouselDefaults() carousel.Settings {
	cfg := c.Config.Carousel
	settings := carousel.Settings{
		Interval:   cfg.Interval,
		Wrap:       cfg.Wrap,
		Pause:      cfg.Pause,
		Indicators: cfg.Indicators,
		Controls:   cfg.Controls,
		Assets:     cfg.Assets,
		ImageType:  carousel.ImageType(strings.TrimSpace(cfg.ImageType)),
		ImageStyle: strings.TrimSpace(cfg.ImageStyle),
	}
	if settings.ImageType == "" {
		settings.ImageType = carousel.ImageTypeDefault
	}
	if settings.ImageStyle == "" {
		settings.ImageStyle = carousel.OriginalImageStyle
	}
	return settings
}

func (c *Container) configureMount() error {
	if !c.Config.Features.Mount {
		return nil
	}
	theme := c.Config.Theme
	opts := []mount.Option{mount.WithLogger(logging.MountLogger(c.loggerProvider))}
	if c.templates != nil {
		opts = append(opts, mount.WithTemplates(c.templates))
	}
	c.mountSvc = mount.NewService(mount.Config{
		Theme:          theme.Name,
		Variant:        theme.Variant,
		MountElementID: theme.MountElementID,
		BundleAsset:    theme.BundleAsset,
	}, opts...)

	if dir := strings.TrimSpace(theme.Dir); dir != "" {
		if err := c.mountSvc.LoadDir(os.DirFS(dir), "."); err != nil {
			return err
		}
	}
	return nil
}

// WatchCarouselSettings logs settings changes until ctx is cancelled.
func (c *Container) WatchCarouselSettings(ctx context.Context) error {
	if c.carouselSettingsRepo == nil {
		return carousel.ErrRepositoryNotConfig
	}
	events, err := c.carouselSettingsRepo.Subscribe(ctx)
	if err != nil {
		return err
	}
	logger := logging.CarouselLogger(c.loggerProvider)
	go func() {
		for evt := range events {
			logger.Info("carousel.settings.changed",
				"change", string(evt.Type),
				"interval", evt.Settings.Interval,
				"image_type", string(evt.Settings.ImageType),
				"image_style", evt.Settings.ImageStyle,
			)
		}
	}()
	return nil
}

// HTTPAPI builds the HTTP endpoints for the wired services. opts are applied
// after the configured defaults.
func (c *Container) HTTPAPI(opts ...bootstraphttp.Option) *bootstraphttp.API {
	tabsCfg := c.Config.Tabs
	base := []bootstraphttp.Option{
		bootstraphttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		bootstraphttp.WithPreference(bootstraphttp.PreferenceConfig{
			Key:    tabsCfg.PreferenceKey,
			Path:   tabsCfg.CookiePath,
			MaxAge: tabsCfg.CookieMaxAge,
		}),
		bootstraphttp.WithAccessMode(permissions.ParseAccessMode(tabsCfg.AccessMode)),
		bootstraphttp.WithFieldPermissionTypes(tabsCfg.FieldPermissions),
	}
	if c.paragraphSvc != nil && c.formatter != nil {
		base = append(base,
			bootstraphttp.WithParagraphService(c.paragraphSvc),
			bootstraphttp.WithFormatter(c.formatter),
		)
	}
	if c.carouselSvc != nil {
		base = append(base, bootstraphttp.WithCarouselService(c.carouselSvc))
	}
	if c.mountSvc != nil {
		base = append(base, bootstraphttp.WithMount(c.mountSvc))
	}
	return bootstraphttp.NewAPI(append(base, opts...)...)
}

// Close releases the database opened by the container. A database passed
// through WithBunDB is left open.
func (c *Container) Close() error {
	return c.closeOwnedDB()
}

func (c *Container) closeOwnedDB() error {
	if !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}

func (c *Container) storageName() string {
	if c.bunDB == nil {
		return "memory"
	}
	return "bun:" + c.bunDB.Dialect().Name().String()
}

// LoggerProvider returns the provider module loggers are drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// BunDB returns the database backing bun storage, or nil.
func (c *Container) BunDB() *bun.DB { return c.bunDB }

// ActivityEmitter returns the emitter shared by mutating services.
func (c *Container) ActivityEmitter() *activity.Emitter { return c.activityEmitter }

// ParagraphService returns the paragraphs service, nil when the feature is off.
func (c *Container) ParagraphService() paragraphs.Service { return c.paragraphSvc }

// ParagraphTypes returns the paragraph type registry.
func (c *Container) ParagraphTypes() *paragraphs.TypeRegistry { return c.typeRegistry }

// CarouselService returns the carousel service, nil when the feature is off.
func (c *Container) CarouselService() carousel.Service { return c.carouselSvc }

// FileStore returns the carousel file store.
func (c *Container) FileStore() carousel.FileStore { return c.fileStore }

// TabsFormatter returns the formatter used for paragraph fields.
func (c *Container) TabsFormatter() *tabs.Formatter { return c.formatter }

// MountService returns the front-end mount service, nil when disabled.
func (c *Container) MountService() *mount.Service { return c.mountSvc }

// RouteManager returns the go-urlkit manager behind operation links, if the
// container built one.
func (c *Container) RouteManager() *urlkit.RouteManager { return c.routeManager }
