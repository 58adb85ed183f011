package cmsbootstrap_test

import (
	"errors"
	"testing"

	cmsbootstrap "github.com/goliatone/go-cms-bootstrap"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := cmsbootstrap.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateCarouselBlockRequiresCarousel(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Features.Carousel = false
	cfg.Features.CarouselBlock = true

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrCarouselFeatureRequiredBlock) {
		t.Fatalf("expected ErrCarouselFeatureRequiredBlock, got %v", err)
	}
}

func TestConfigValidateTabsMode(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Tabs.Mode = "accordion"

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrTabsModeInvalid) {
		t.Fatalf("expected ErrTabsModeInvalid, got %v", err)
	}
}

func TestConfigValidateActivityRequiresCommands(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Features.Activity = true
	cfg.Commands.Enabled = false

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrActivityRequiresCommands) {
		t.Fatalf("expected ErrActivityRequiresCommands, got %v", err)
	}
}

func TestConfigValidateStorageDialect(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "mysql"

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrStorageDialectUnknown) {
		t.Fatalf("expected ErrStorageDialectUnknown, got %v", err)
	}
}

func TestConfigValidateMountRequiresElement(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Features.Mount = true
	cfg.Theme.MountElementID = " "

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrMountElementRequired) {
		t.Fatalf("expected ErrMountElementRequired, got %v", err)
	}
}

func TestConfigValidateThemeRequiresMount(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Theme.Name = "react-example"

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrMountFeatureRequired) {
		t.Fatalf("expected ErrMountFeatureRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProvider(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, cmsbootstrap.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}
