package cmsbootstrap_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cmsbootstrap "github.com/goliatone/go-cms-bootstrap"
	"github.com/goliatone/go-cms-bootstrap/commands"
	"github.com/goliatone/go-cms-bootstrap/internal/di"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
)

func TestModuleRendersParagraphTabs(t *testing.T) {
	module, err := cmsbootstrap.New(cmsbootstrap.DefaultConfig(),
		di.WithParagraphTypes(
			cmsbootstrap.ParagraphType{Bundle: "text", Label: "Text"},
			cmsbootstrap.ParagraphType{Bundle: "quote", Label: "Quote"},
		),
		di.WithAllowedTypes("field_tabs", "text", "quote"),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	ctx := context.Background()
	ref := paragraphs.FieldRef{EntityType: "node", EntityID: "1", Field: "field_tabs"}
	for _, bundle := range []string{"text", "quote"} {
		if _, err := module.Paragraphs().Add(ctx, paragraphs.AddInput{
			Field:   ref,
			Type:    bundle,
			Content: map[string]any{"body": "Body of " + bundle},
		}); err != nil {
			t.Fatalf("add %s paragraph: %v", bundle, err)
		}
	}

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		t.Fatalf("register routes: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/paragraphs/node/1/field_tabs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"nav-link", "Body of text", "Body of quote"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in rendered field, got %s", want, body)
		}
	}
}

func TestModuleExposesFeatureServices(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Features.Mount = true

	module, err := cmsbootstrap.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Carousel() == nil || module.Tabs() == nil || module.Mount() == nil {
		t.Fatal("expected carousel, tabs and mount to be wired")
	}
	if module.Container() == nil {
		t.Fatal("expected container access")
	}
}

func TestModuleRegisterCommandsRequiresCommandLayer(t *testing.T) {
	module, err := cmsbootstrap.New(cmsbootstrap.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.RegisterCommands(commands.RegistrationOptions{}); !errors.Is(err, commands.ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := cmsbootstrap.DefaultConfig()
	cfg.Tabs.PreferenceKey = ""

	if _, err := cmsbootstrap.New(cfg); !errors.Is(err, cmsbootstrap.ErrTabsPreferenceKeyRequired) {
		t.Fatalf("expected ErrTabsPreferenceKeyRequired, got %v", err)
	}
}
