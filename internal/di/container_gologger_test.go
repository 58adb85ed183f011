package di

import (
	"testing"

	"github.com/goliatone/go-cms-bootstrap/internal/logging/console"
	"github.com/goliatone/go-cms-bootstrap/internal/logging/gologger"
	"github.com/goliatone/go-cms-bootstrap/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	logger := provider.GetLogger("bootstrap.test")
	if logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderFallsBackToConsole(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "error"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.loggerProvider == nil {
		t.Fatal("expected console provider")
	}
	if _, ok := container.loggerProvider.(*gologger.Provider); ok {
		t.Fatal("expected console provider, got go-logger")
	}
	if level, ok := console.ParseLevel(cfg.Logging.Level); !ok || level != console.LevelError {
		t.Fatalf("expected error level to parse, got %v %v", level, ok)
	}
}

func TestConfigureLoggerDisabledLeavesProviderUnset(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = false

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != nil {
		t.Fatalf("expected no provider when logging is disabled, got %T", container.LoggerProvider())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error for unknown logging provider")
	}
}
