package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/mount"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/internal/render"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// AccountResolver returns the account a request acts for.
type AccountResolver func(r *http.Request) interfaces.Account

// OwnerResolver looks up the owner of a host entity. An empty owner means
// "edit own" grants never apply.
type OwnerResolver func(ctx context.Context, entityType, entityID string) string

// PreferenceConfig shapes the preference cookie.
type PreferenceConfig struct {
	Key    string
	Path   string
	MaxAge time.Duration
}

// API registers the paragraphs, carousel and mount endpoints.
type API struct {
	basePath         string
	paragraphs       paragraphs.Service
	carousel         carousel.Service
	formatter        *tabs.Formatter
	mount            *mount.Service
	logger           interfaces.Logger
	forms            interfaces.TemplateRenderer
	accounts         AccountResolver
	owners           OwnerResolver
	preference       PreferenceConfig
	accessMode       permissions.AccessMode
	fieldPermissions map[string]string
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance. Accounts default to the one stored on
// the request context, falling back to an anonymous viewer.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/",
		logger:   logging.NoOp(),
		forms:    render.New(templateFS),
		accounts: contextAccount,
		preference: PreferenceConfig{
			Key:  tabs.DefaultPreferenceKey,
			Path: "/",
		},
		accessMode:       permissions.AccessModeContent,
		fieldPermissions: map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

func contextAccount(r *http.Request) interfaces.Account {
	if account := permissions.AccountFromContext(r.Context()); account != nil {
		return account
	}
	return permissions.Anonymous()
}

// WithBasePath mounts every route under path.
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithParagraphService wires the paragraphs service.
func WithParagraphService(service paragraphs.Service) Option {
	return func(api *API) { api.paragraphs = service }
}

// WithCarouselService wires the carousel service.
func WithCarouselService(service carousel.Service) Option {
	return func(api *API) { api.carousel = service }
}

// WithFormatter sets the tabs formatter used for field rendering.
func WithFormatter(formatter *tabs.Formatter) Option {
	return func(api *API) { api.formatter = formatter }
}

// WithMount wires the front-end mount shell.
func WithMount(service *mount.Service) Option {
	return func(api *API) { api.mount = service }
}

// WithLogger sets the API logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithAccountResolver overrides how the acting account is found.
func WithAccountResolver(resolver AccountResolver) Option {
	return func(api *API) {
		if resolver != nil {
			api.accounts = resolver
		}
	}
}

// WithOwnerResolver wires host entity ownership lookups.
func WithOwnerResolver(resolver OwnerResolver) Option {
	return func(api *API) { api.owners = resolver }
}

// WithPreference configures the preference cookie.
func WithPreference(cfg PreferenceConfig) Option {
	return func(api *API) {
		if strings.TrimSpace(cfg.Key) != "" {
			api.preference.Key = cfg.Key
		}
		if strings.TrimSpace(cfg.Path) != "" {
			api.preference.Path = cfg.Path
		}
		api.preference.MaxAge = cfg.MaxAge
	}
}

// WithAccessMode selects how the add form is guarded.
func WithAccessMode(mode permissions.AccessMode) Option {
	return func(api *API) { api.accessMode = mode }
}

// WithFieldPermissionTypes sets the permission policy ("custom", "private")
// of host fields for the field_permissions access mode.
func WithFieldPermissionTypes(types map[string]string) Option {
	return func(api *API) {
		for field, policy := range types {
			api.fieldPermissions[field] = policy
		}
	}
}

// Register attaches the endpoints of every wired service to mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api.paragraphs != nil {
		if api.formatter == nil {
			return fmt.Errorf("http: paragraphs routes require a tabs formatter")
		}
		api.registerParagraphRoutes(mux)
	}
	if api.carousel != nil {
		api.registerCarouselRoutes(mux)
	}
	api.registerAssetRoutes(mux)
	return nil
}

func (api *API) path(suffix string) string {
	return joinPath(api.basePath, suffix)
}

func (api *API) preferenceStore(w http.ResponseWriter, r *http.Request) *tabs.PreferenceStore {
	backend := &tabs.CookiePreferences{
		Request: r,
		Writer:  w,
		Path:    api.preference.Path,
		MaxAge:  api.preference.MaxAge,
	}
	return tabs.NewPreferenceStore(backend, tabs.WithPreferenceLogger(api.logger))
}
