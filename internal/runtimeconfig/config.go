package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrTabsModeInvalid              = errors.New("bootstrap config: tabs mode must be tab or pill")
	ErrTabsPreferenceKeyRequired    = errors.New("bootstrap config: tabs preference key is required")
	ErrTabsMaxDepthInvalid          = errors.New("bootstrap config: tabs max render depth must be positive")
	ErrCarouselIntervalInvalid      = errors.New("bootstrap config: carousel interval must be zero or positive")
	ErrCarouselImageTypeInvalid     = errors.New("bootstrap config: carousel image type is invalid")
	ErrStorageProviderUnknown       = errors.New("bootstrap config: storage provider is invalid")
	ErrStorageDialectUnknown        = errors.New("bootstrap config: storage dialect is invalid")
	ErrCacheTTLInvalid              = errors.New("bootstrap config: cache ttl must be positive when cache is enabled")
	ErrMountFeatureRequired         = errors.New("bootstrap config: mount feature must be enabled to configure a theme")
	ErrMountElementRequired         = errors.New("bootstrap config: mount element id is required")
	ErrActivityRequiresCommands     = errors.New("bootstrap config: activity feature requires commands to be enabled")
	ErrLoggingProviderRequired      = errors.New("bootstrap config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown       = errors.New("bootstrap config: logging provider is invalid")
	ErrLoggingLevelInvalid          = errors.New("bootstrap config: logging level is invalid")
	ErrLoggingFormatInvalid         = errors.New("bootstrap config: logging format is invalid")
	ErrRoutesGroupRequiresConfig    = errors.New("bootstrap config: routes group requires a route config")
	ErrCommandsTimeoutInvalid       = errors.New("bootstrap config: command timeout must be zero or positive")
	ErrAccessModeUnknown            = errors.New("bootstrap config: paragraph access mode is invalid")
	ErrCarouselFeatureRequiredBlock = errors.New("bootstrap config: carousel feature must be enabled to expose the block")
)

// Config aggregates feature flags and adapter bindings for the bootstrap module.
type Config struct {
	Enabled  bool
	Tabs     TabsConfig
	Carousel CarouselConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Routes   RoutesConfig
	Theme    ThemeConfig
	Commands CommandsConfig
	Features Features
	Logging  LoggingConfig
}

// TabsConfig carries the formatter defaults and the preference cookie shape.
type TabsConfig struct {
	Vertical       bool
	Mode           string
	HideEmpty      bool
	HeaderText     string
	FooterText     string
	CustomClass    string
	HideOperations bool
	// Operations enables the per-item view/edit/duplicate/delete block.
	Operations    bool
	PreferenceKey string
	CookiePath    string
	CookieMaxAge  time.Duration
	DialogWidth   string
	MaxDepth      int
	// AccessMode selects how the add form is guarded:
	// type_permissions, field_permissions or the access content default.
	AccessMode string
	// FieldPermissions maps host fields to their permission policy,
	// "custom" or "private", for the field_permissions access mode.
	FieldPermissions map[string]string
}

// CarouselConfig holds the carousel settings applied when none are stored.
type CarouselConfig struct {
	Interval    int
	Wrap        bool
	Pause       bool
	Indicators  bool
	Controls    bool
	Assets      bool
	ImageType   string
	ImageStyle  string
	ImageStyles map[string]string
	FilesBase   string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig wires go-urlkit route groups for operation links.
type RoutesConfig struct {
	Config *urlkit.Config
	Group  string
}

// ThemeConfig configures the front-end mount point.
type ThemeConfig struct {
	Dir            string
	Name           string
	Variant        string
	MountElementID string
	BundleAsset    string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// Features toggles module functionality.
type Features struct {
	ParagraphTabs bool
	Carousel      bool
	CarouselBlock bool
	Mount         bool
	Activity      bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the original modules install with.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Tabs: TabsConfig{
			Mode:          "tab",
			HideEmpty:     true,
			PreferenceKey: "paragraphs_bootstrap_tabs",
			CookiePath:    "/",
			CookieMaxAge:  30 * 24 * time.Hour,
			DialogWidth:   "80%",
			MaxDepth:      20,
		},
		Carousel: CarouselConfig{
			Interval:   5000,
			Wrap:       true,
			Pause:      true,
			Indicators: true,
			Controls:   true,
			ImageType:  "img-default",
			ImageStyle: "original",
			ImageStyles: map[string]string{
				"thumbnail": "Thumbnail (100×100)",
				"medium":    "Medium (220×220)",
				"large":     "Large (480×480)",
			},
			FilesBase: "/files",
		},
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Theme: ThemeConfig{
			MountElementID: "react-app",
			BundleAsset:    "app.js",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Features: Features{
			ParagraphTabs: true,
			Carousel:      true,
			CarouselBlock: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.ParagraphTabs {
		if err := cfg.Tabs.validate(); err != nil {
			return err
		}
	}
	if cfg.Features.CarouselBlock && !cfg.Features.Carousel {
		return ErrCarouselFeatureRequiredBlock
	}
	if cfg.Features.Carousel {
		if cfg.Carousel.Interval < 0 {
			return fmt.Errorf("%w: %d", ErrCarouselIntervalInvalid, cfg.Carousel.Interval)
		}
		switch strings.TrimSpace(cfg.Carousel.ImageType) {
		case "", "img-default", "img-fluid", "img-circle":
		default:
			return fmt.Errorf("%w: %s", ErrCarouselImageTypeInvalid, cfg.Carousel.ImageType)
		}
	}
	switch normalize(cfg.Storage.Provider) {
	case "", "memory":
	case "bun":
		switch normalize(cfg.Storage.Dialect) {
		case "", "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Routes.Group) != "" && cfg.Routes.Config == nil {
		return ErrRoutesGroupRequiresConfig
	}
	if !cfg.Features.Mount && strings.TrimSpace(cfg.Theme.Name) != "" {
		return ErrMountFeatureRequired
	}
	if cfg.Features.Mount && strings.TrimSpace(cfg.Theme.MountElementID) == "" {
		return ErrMountElementRequired
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}
	if cfg.Features.Activity && !cfg.Commands.Enabled {
		return ErrActivityRequiresCommands
	}
	if cfg.Features.Logger {
		return cfg.Logging.validate()
	}
	return nil
}

func (tabs TabsConfig) validate() error {
	switch normalize(tabs.Mode) {
	case "", "tab", "pill":
	default:
		return fmt.Errorf("%w: %s", ErrTabsModeInvalid, tabs.Mode)
	}
	if strings.TrimSpace(tabs.PreferenceKey) == "" {
		return ErrTabsPreferenceKeyRequired
	}
	if tabs.MaxDepth <= 0 {
		return ErrTabsMaxDepthInvalid
	}
	switch normalize(tabs.AccessMode) {
	case "", "type_permissions", "field_permissions", "access_content":
	default:
		return fmt.Errorf("%w: %s", ErrAccessModeUnknown, tabs.AccessMode)
	}
	return nil
}

func (logging LoggingConfig) validate() error {
	provider := normalize(logging.Provider)
	switch provider {
	case "":
		return ErrLoggingProviderRequired
	case "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	switch level := normalize(logging.Level); level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		switch format := normalize(logging.Format); format {
		case "", "json", "console", "pretty":
		default:
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
