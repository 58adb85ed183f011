package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	cmsbootstrap "github.com/goliatone/go-cms-bootstrap"
	"github.com/goliatone/go-cms-bootstrap/commands"
	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/di"
	"github.com/goliatone/go-cms-bootstrap/internal/fixtures"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/pkg/activity"
)

//go:embed fixtures/*.md
var embeddedFixtures embed.FS

const tabsField = "field_tabs"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("bootstrap example: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("bootstrap-example", flag.ContinueOnError)
	flags.SetOutput(out)
	addr := flags.String("addr", ":8080", "HTTP listen address")
	fixturesDir := flags.String("fixtures", "", "Directory of fixture markdown files (defaults to the embedded set)")
	storage := flags.String("storage", "memory", "Storage provider: memory or bun")
	dialect := flags.String("dialect", "sqlite", "Bun dialect: sqlite or postgres")
	dsn := flags.String("dsn", "", "Database DSN for bun storage")
	logLevel := flags.String("log-level", "info", "Log level")
	logProvider := flags.String("log-provider", "console", "Logger provider: console or gologger")
	themeDir := flags.String("theme-dir", "", "Directory holding a go-theme manifest for the /app mount point")
	seedOnly := flags.Bool("seed-only", false, "Seed fixtures, print a summary and exit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := cmsbootstrap.DefaultConfig()
	cfg.Storage.Provider = *storage
	cfg.Storage.Dialect = *dialect
	cfg.Storage.DSN = *dsn
	cfg.Tabs.Operations = true
	cfg.Commands.Enabled = true
	cfg.Features.Activity = true
	cfg.Features.Logger = true
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = *logLevel
	if dir := strings.TrimSpace(*themeDir); dir != "" {
		cfg.Features.Mount = true
		cfg.Theme.Dir = dir
	}

	audit := &activity.CaptureHook{}
	module, err := cmsbootstrap.New(cfg,
		di.WithParagraphTypes(exampleParagraphTypes()...),
		di.WithAllowedTypes(tabsField, "text", "quote", "video"),
		di.WithFileStore(carousel.NewMemoryFileStore(
			carousel.File{ID: "10", URI: "carousel/mountains.jpg"},
			carousel.File{ID: "11", URI: "carousel/lake.jpg"},
		)),
		di.WithActivityHooks(audit),
	)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	var fsys fs.FS = embeddedFixtures
	dir := "fixtures"
	if custom := strings.TrimSpace(*fixturesDir); custom != "" {
		fsys = os.DirFS(custom)
		dir = "."
	}
	set, err := fixtures.Load(fsys, dir)
	if err != nil {
		return err
	}
	result, err := fixtures.Seed(ctx, set, module.Carousel(), module.Paragraphs())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded fixtures: created=%d skipped=%d activity=%d\n", result.Created, result.Skipped, len(audit.Snapshot()))

	if *seedOnly {
		return nil
	}

	registry := &commandIndex{}
	handlers, err := module.RegisterCommands(commands.RegistrationOptions{
		Registry:   registry,
		Dispatcher: commands.NewGoCommandDispatcher(),
	})
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	defer handlers.Unsubscribe()
	fmt.Fprintf(out, "registered %d command handlers\n", len(registry.handlers))

	if err := module.WatchCarouselSettings(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		return err
	}
	server := &http.Server{
		Addr:              *addr,
		Handler:           withDemoAccount(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(out, "listening on %s (try /paragraphs/node/1/%s)\n", *addr, tabsField)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func exampleParagraphTypes() []cmsbootstrap.ParagraphType {
	return []cmsbootstrap.ParagraphType{
		{
			Bundle: "text",
			Label:  "Text",
			Schema: map[string]any{
				"fields": []any{
					map[string]any{"name": "title", "type": "string"},
					map[string]any{"name": "body", "type": "markdown", "required": true},
				},
			},
		},
		{
			Bundle: "quote",
			Label:  "Quote",
			Schema: map[string]any{
				"fields": []any{
					map[string]any{"name": "body", "type": "markdown", "required": true},
					map[string]any{"name": "author", "type": "string"},
				},
			},
		},
		{
			Bundle: "video",
			Label:  "Video",
			Schema: map[string]any{
				"fields": []any{
					map[string]any{"name": "url", "type": "link", "required": true},
				},
			},
		},
	}
}

// withDemoAccount acts as the site administrator for every request.
func withDemoAccount(next http.Handler) http.Handler {
	admin := permissions.StaticAccount{AccountID: "1", Permissions: permissions.NewSet("*")}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(permissions.WithAccount(r.Context(), admin)))
	})
}

type commandIndex struct {
	handlers []any
}

func (c *commandIndex) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}
