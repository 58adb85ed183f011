package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/logging/console"
)

func TestConsoleLogger_WritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("bootstrap.carousel")
	logger = logging.WithFields(logger, map[string]any{"module": "bootstrap.carousel"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	itemID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("carousel.item.created",
		"item_id", itemID,
		"weight", 3,
		"title", "Summer sale",
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z INFO carousel.item.created correlation_id=req-1234 item_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 logger=bootstrap.carousel module=bootstrap.carousel title="Summer sale" weight=3`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("bootstrap.tabs")
	logger.Debug("tabs.debug", "group", "field_tabs")
	logger.Warn("tabs.discriminator.unknown", "value", "ghost")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single entry, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "WARN tabs.discriminator.unknown") {
		t.Fatalf("expected warn entry, got %q", lines[0])
	}
}

func TestConsoleLogger_PositionalArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("x").Info("odd", 42, "value", "dangling")

	got := buf.String()
	if !strings.Contains(got, "field_0=value") || !strings.Contains(got, "field_2=dangling") {
		t.Fatalf("expected positional fields, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		" error ": console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v", input, got, ok, want)
		}
	}
	if got, ok := console.ParseLevel("loud"); ok || got != console.LevelInfo {
		t.Fatalf("expected unknown level to fall back to info, got %v,%v", got, ok)
	}
}
