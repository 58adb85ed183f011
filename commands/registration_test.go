package commands

import (
	"context"
	"errors"
	"testing"

	carouselcmd "github.com/goliatone/go-cms-bootstrap/internal/commands/carousel"
	paragraphscmd "github.com/goliatone/go-cms-bootstrap/internal/commands/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/di"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/runtimeconfig"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

func newContainer(t *testing.T, mutate func(*runtimeconfig.Config)) *di.Container {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	if mutate != nil {
		mutate(&cfg)
	}
	container, err := di.NewContainer(cfg,
		di.WithParagraphTypes(paragraphs.ParagraphType{Bundle: "text", Label: "Text"}),
		di.WithAllowedTypes("field_tabs", "text"),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatch := &recordingDispatcher{}

	result, err := RegisterContainerCommands(newContainer(t, nil), RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatch,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 6 {
		t.Fatalf("expected 6 handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(result.Subscriptions) != len(result.Handlers) {
		t.Fatalf("expected a subscription per handler, got %d", len(result.Subscriptions))
	}

	result.Unsubscribe()
	for _, sub := range dispatch.subscriptions {
		if !sub.unsubscribed {
			t.Fatal("expected every subscription to be torn down")
		}
	}
}

func TestRegisterContainerCommandsRespectsFeatures(t *testing.T) {
	container := newContainer(t, func(cfg *runtimeconfig.Config) {
		cfg.Features.Carousel = false
		cfg.Features.CarouselBlock = false
	})

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected paragraph handlers only, got %d", len(result.Handlers))
	}
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case interface{ Execute(context.Context, carouselcmd.CreateItemCommand) error }:
			t.Fatal("expected no carousel handlers when the carousel is disabled")
		}
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsRequiresCommandLayer(t *testing.T) {
	container := newContainer(t, func(cfg *runtimeconfig.Config) {
		cfg.Commands.Enabled = false
	})

	result, err := RegisterContainerCommands(container, RegistrationOptions{Registry: &recordingRegistry{}})
	if !errors.Is(err, ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsCollectsRegistryErrors(t *testing.T) {
	boom := errors.New("registry full")
	result, err := RegisterContainerCommands(newContainer(t, nil), RegistrationOptions{
		Registry: &recordingRegistry{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 6 {
		t.Fatalf("expected handlers to be built despite registry errors, got %d", len(result.Handlers))
	}
}

func TestGoCommandDispatcherRoutesParagraphCommands(t *testing.T) {
	container := newContainer(t, func(cfg *runtimeconfig.Config) {
		cfg.Features.Carousel = false
		cfg.Features.CarouselBlock = false
	})

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Dispatcher: NewGoCommandDispatcher(runner.WithMaxRetries(0)),
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	ctx := context.Background()
	err = dispatcher.Dispatch(ctx, paragraphscmd.AddCommand{
		ParagraphType: "text",
		EntityType:    "node",
		EntityID:      "7",
		EntityField:   "field_tabs",
		Content:       map[string]any{"body": "Dispatched"},
	})
	if err != nil {
		t.Fatalf("dispatch add: %v", err)
	}

	ref := paragraphs.FieldRef{EntityType: "node", EntityID: "7", Field: "field_tabs"}
	items, err := container.ParagraphService().ListByField(ctx, ref)
	if err != nil {
		t.Fatalf("list paragraphs: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected dispatched paragraph to be stored, got %d", len(items))
	}

	if err := dispatcher.Dispatch(ctx, paragraphscmd.AddCommand{ParagraphType: "text"}); err == nil {
		t.Fatal("expected validation error for incomplete command")
	}
}

func TestGoCommandDispatcherRejectsUnknownHandlers(t *testing.T) {
	if _, err := NewGoCommandDispatcher().RegisterCommand(struct{}{}); err == nil {
		t.Fatal("expected error for unsupported handler")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
