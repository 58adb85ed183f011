package runtimeconfig_test

import (
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-cms-bootstrap/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Tabs.PreferenceKey != "paragraphs_bootstrap_tabs" {
		t.Fatalf("unexpected preference key %q", cfg.Tabs.PreferenceKey)
	}
	if cfg.Carousel.Interval != 5000 || cfg.Carousel.ImageStyle != "original" {
		t.Fatalf("unexpected carousel defaults %+v", cfg.Carousel)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"tabs mode", func(c *runtimeconfig.Config) { c.Tabs.Mode = "accordion" }, runtimeconfig.ErrTabsModeInvalid},
		{"preference key", func(c *runtimeconfig.Config) { c.Tabs.PreferenceKey = " " }, runtimeconfig.ErrTabsPreferenceKeyRequired},
		{"max depth", func(c *runtimeconfig.Config) { c.Tabs.MaxDepth = 0 }, runtimeconfig.ErrTabsMaxDepthInvalid},
		{"access mode", func(c *runtimeconfig.Config) { c.Tabs.AccessMode = "open" }, runtimeconfig.ErrAccessModeUnknown},
		{"carousel interval", func(c *runtimeconfig.Config) { c.Carousel.Interval = -1 }, runtimeconfig.ErrCarouselIntervalInvalid},
		{"carousel image type", func(c *runtimeconfig.Config) { c.Carousel.ImageType = "img-round" }, runtimeconfig.ErrCarouselImageTypeInvalid},
		{"block without carousel", func(c *runtimeconfig.Config) { c.Features.Carousel = false }, runtimeconfig.ErrCarouselFeatureRequiredBlock},
		{"storage provider", func(c *runtimeconfig.Config) { c.Storage.Provider = "mongo" }, runtimeconfig.ErrStorageProviderUnknown},
		{"storage dialect", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "bun"
			c.Storage.Dialect = "mysql"
		}, runtimeconfig.ErrStorageDialectUnknown},
		{"cache ttl", func(c *runtimeconfig.Config) {
			c.Cache.Enabled = true
			c.Cache.DefaultTTL = 0
		}, runtimeconfig.ErrCacheTTLInvalid},
		{"routes group", func(c *runtimeconfig.Config) { c.Routes.Group = "admin" }, runtimeconfig.ErrRoutesGroupRequiresConfig},
		{"theme without mount", func(c *runtimeconfig.Config) { c.Theme.Name = "react" }, runtimeconfig.ErrMountFeatureRequired},
		{"mount element", func(c *runtimeconfig.Config) {
			c.Features.Mount = true
			c.Theme.MountElementID = ""
		}, runtimeconfig.ErrMountElementRequired},
		{"activity requires commands", func(c *runtimeconfig.Config) { c.Features.Activity = true }, runtimeconfig.ErrActivityRequiresCommands},
		{"logging provider required", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = ""
		}, runtimeconfig.ErrLoggingProviderRequired},
		{"logging provider unknown", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "syslog"
		}, runtimeconfig.ErrLoggingProviderUnknown},
		{"logging level", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Level = "verbose"
		}, runtimeconfig.ErrLoggingLevelInvalid},
		{"logging format", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_AllowsRoutesWithConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routes.Group = "admin"
	cfg.Routes.Config = &urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    "admin",
			BaseURL: "https://example.com",
			Paths:   map[string]string{"paragraph.edit": "/paragraphs/:id/edit"},
		}},
	}
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "postgres"
	cfg.Commands.Enabled = true
	cfg.Features.Activity = true

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}
