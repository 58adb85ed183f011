package gologger

import (
	"context"
	"slices"
	"testing"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	glog "github.com/goliatone/go-logger/glog"
)

func TestNewProviderBuildsModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{
		Level:  "debug",
		Format: "console",
		Focus:  []string{" bootstrap.tabs ", ""},
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("bootstrap.tabs")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected go-logger adapter to support fields, got %T", logger)
	}
	child := fieldsLogger.WithFields(map[string]any{"module": "bootstrap.tabs"})
	child.Debug("tabs.build.completed", "panels", 3)

	if p.GetLogger("  ") == nil {
		t.Fatal("expected root logger for blank name")
	}
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	p.GetLogger("bootstrap.http").Info("ignored")
}

func TestAdapterDelegatesAndClonesFields(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub).(*adapter)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	fields := map[string]any{"group": "field_tabs"}
	adapted.WithFields(fields)
	fields["group"] = "mutated"

	if len(stub.fields) != 1 || stub.fields[0]["group"] != "field_tabs" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}
	if adapted.WithFields(nil) != adapted {
		t.Fatal("expected empty fields to return the same logger")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}

	want := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if !slices.Equal(stub.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, stub.calls)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}
