package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// Config selects go-logger output options.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger children named after bootstrap modules.
type Provider struct {
	root *glog.BaseLogger
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

// NewProvider builds the go-logger root. Unknown formats are rejected; an
// unknown level leaves the go-logger default in place.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options := []glog.Option{format()}

	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimmed(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the named child, or the root for a blank name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

var _ interfaces.FieldsLogger = (*adapter)(nil)

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	switch inner := a.inner.(type) {
	case glog.FieldsLogger:
		return wrap(inner.WithFields(maps.Clone(fields)))
	case interface{ With(...any) *glog.BaseLogger }:
		args := make([]any, 0, len(fields)*2)
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			args = append(args, key, fields[key])
		}
		return wrap(inner.With(args...))
	default:
		return a
	}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return wrap(a.inner.WithContext(ctx))
}

func trimmed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
