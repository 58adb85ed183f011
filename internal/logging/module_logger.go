package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

const (
	rootModule       = "bootstrap"
	tabsModule       = "bootstrap.tabs"
	paragraphsModule = "bootstrap.paragraphs"
	carouselModule   = "bootstrap.carousel"
	httpModule       = "bootstrap.http"
	mountModule      = "bootstrap.mount"
)

const (
	fieldEntityType = "entity_type"
	fieldEntityID   = "entity_id"
	fieldFieldName  = "field"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as structured context so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TabsLogger returns the logger namespace reserved for the tabs formatter.
func TabsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tabsModule)
}

// ParagraphsLogger returns the logger namespace reserved for paragraph storage.
func ParagraphsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, paragraphsModule)
}

// CarouselLogger returns the logger namespace reserved for the carousel module.
func CarouselLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, carouselModule)
}

// HTTPLogger returns the logger namespace reserved for HTTP adapters.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// MountLogger returns the logger namespace reserved for the front-end mount point.
func MountLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mountModule)
}

// WithFieldContext enriches the logger with the host entity and field a
// render pass is working on. Empty values are ignored.
func WithFieldContext(logger interfaces.Logger, entityType, entityID, field string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entityType); trimmed != "" {
		fields[fieldEntityType] = trimmed
	}
	if trimmed := strings.TrimSpace(entityID); trimmed != "" {
		fields[fieldEntityID] = trimmed
	}
	if trimmed := strings.TrimSpace(field); trimmed != "" {
		fields[fieldFieldName] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
