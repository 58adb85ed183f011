package carouselcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/commands"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func newCarouselService() carousel.Service {
	return carousel.NewService(carousel.NewMemoryItemRepository(), carousel.NewMemorySettingsRepository())
}

func TestCreateAndDeleteItemHandlers(t *testing.T) {
	ctx := context.Background()
	svc := newCarouselService()

	create := NewCreateItemHandler(svc, nil, FeatureGates{})
	if err := create.Execute(ctx, CreateItemCommand{ImageID: "10", Weight: 2, Status: carousel.StatusActive}); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := svc.ListItems(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one item, got %d (%v)", len(items), err)
	}

	remove := NewDeleteItemHandler(svc, nil, FeatureGates{})
	if err := remove.Execute(ctx, DeleteItemCommand{ID: items[0].ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if items, _ := svc.ListItems(ctx); len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestCreateItemHandlerRejectsInvalidInput(t *testing.T) {
	handler := NewCreateItemHandler(newCarouselService(), nil, FeatureGates{})

	err := handler.Execute(context.Background(), CreateItemCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	err = handler.Execute(context.Background(), CreateItemCommand{ImageID: "10", Weight: -1})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected domain validation category, got %v", err)
	}
}

func TestSaveSettingsHandler(t *testing.T) {
	ctx := context.Background()
	svc := newCarouselService()
	handler := NewSaveSettingsHandler(svc, nil, FeatureGates{})

	settings := carousel.DefaultSettings()
	settings.Interval = 8000
	settings.ImageType = carousel.ImageTypeCircle
	if err := handler.Execute(ctx, SaveSettingsCommand{Settings: settings}); err != nil {
		t.Fatalf("save: %v", err)
	}
	stored, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if stored.Interval != 8000 || stored.ImageType != carousel.ImageTypeCircle {
		t.Fatalf("unexpected settings %+v", stored)
	}

	settings.Interval = -5
	if err := handler.Execute(ctx, SaveSettingsCommand{Settings: settings}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandlersHonourFeatureGate(t *testing.T) {
	gates := FeatureGates{CarouselEnabled: func() bool { return false }}
	err := NewDeleteItemHandler(newCarouselService(), nil, gates).Execute(context.Background(), DeleteItemCommand{ID: uuid.New()})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRegisterAddsEveryHandler(t *testing.T) {
	registry := &commands.RecordingRegistry{}
	if err := Register(registry, newCarouselService(), nil, FeatureGates{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(registry.Handlers) != 3 {
		t.Fatalf("expected 3 handlers, got %d", len(registry.Handlers))
	}
}

func TestDispatcherRetriesCreateItem(t *testing.T) {
	ctx := context.Background()
	svc := newCarouselService()

	attempts := 0
	flaky := commands.NewHandler(func(ctx context.Context, msg CreateItemCommand) error {
		attempts++
		if attempts == 1 {
			return errors.New("transient failure")
		}
		return NewCreateItemHandler(svc, nil, FeatureGates{}).Execute(ctx, msg)
	})
	sub := dispatcher.SubscribeCommand(flaky, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(ctx, CreateItemCommand{ImageID: "10"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if items, _ := svc.ListItems(ctx); len(items) != 1 {
		t.Fatalf("expected one item after retry, got %d", len(items))
	}
}
