package mount

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/render"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	gotheme "github.com/goliatone/go-theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultMountElementID is the container the front-end bundle attaches to.
const DefaultMountElementID = "react-app"

var ErrManifestRequired = errors.New("mount: theme manifest is required")

// Config describes the app shell.
type Config struct {
	Title          string
	Theme          string
	Variant        string
	MountElementID string
	// BundleAsset is the manifest asset key of the bundle script. Without a
	// theme it is served from AssetBase.
	BundleAsset string
	AssetBase   string
}

// Shell is the render model of the app page.
type Shell struct {
	Title   string
	Theme   string
	Variant string
	MountID string
	Scripts []string
	Styles  []string
	CSSVars map[string]string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTemplates overrides the renderer used for the shell page.
func WithTemplates(renderer interfaces.TemplateRenderer) Option {
	return func(s *Service) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// Service selects a go-theme manifest and renders the page hosting the
// front-end application.
type Service struct {
	cfg       Config
	registry  *gotheme.MemoryRegistry
	logger    interfaces.Logger
	templates interfaces.TemplateRenderer

	mu         sync.RWMutex
	registered bool
}

// NewService constructs a mount service.
func NewService(cfg Config, opts ...Option) *Service {
	if strings.TrimSpace(cfg.MountElementID) == "" {
		cfg.MountElementID = DefaultMountElementID
	}
	if strings.TrimSpace(cfg.AssetBase) == "" {
		cfg.AssetBase = "/assets"
	}
	s := &Service{
		cfg:      cfg,
		registry: gotheme.NewRegistry(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		s.templates = render.New(templateFS)
	}
	return s
}

// LoadDir reads a theme manifest from fsys and registers it.
func (s *Service) LoadDir(fsys fs.FS, dir string) error {
	if dir == "" {
		dir = "."
	}
	manifest, err := gotheme.LoadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("mount: load theme manifest: %w", err)
	}
	return s.RegisterManifest(manifest)
}

// RegisterManifest registers manifest. A manifest without a name takes the
// configured theme name.
func (s *Service) RegisterManifest(manifest *gotheme.Manifest) error {
	if manifest == nil {
		return ErrManifestRequired
	}
	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = strings.TrimSpace(s.cfg.Theme)
	}
	if normalized.Name == "" {
		return fmt.Errorf("%w: name required", ErrManifestRequired)
	}
	if err := s.registry.Register(&normalized); err != nil {
		return fmt.Errorf("mount: register theme manifest: %w", err)
	}
	s.mu.Lock()
	s.registered = true
	s.mu.Unlock()
	s.logger.Info("mount.theme.registered", "theme", normalized.Name)
	return nil
}

// Shell resolves the page model. variant overrides the configured variant.
func (s *Service) Shell(_ context.Context, variant string) (Shell, error) {
	shell := Shell{
		Title:   s.cfg.Title,
		Theme:   s.cfg.Theme,
		Variant: firstNonEmpty(variant, s.cfg.Variant),
		MountID: s.cfg.MountElementID,
		CSSVars: map[string]string{},
	}

	s.mu.RLock()
	registered := s.registered
	s.mu.RUnlock()
	if !registered {
		if bundle := strings.TrimSpace(s.cfg.BundleAsset); bundle != "" {
			shell.Scripts = []string{path.Join(s.cfg.AssetBase, bundle)}
		}
		return shell, nil
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.cfg.Theme,
		DefaultVariant: s.cfg.Variant,
	}
	selection, err := selector.Select(s.cfg.Theme, shell.Variant)
	if err != nil {
		return Shell{}, fmt.Errorf("mount: select theme %s: %w", s.cfg.Theme, err)
	}
	shell.Theme = selection.Theme
	shell.Variant = selection.Variant
	shell.CSSVars = selection.CSSVariables("")

	for _, key := range manifestAssetKeys(selection) {
		url, _ := selection.Asset(key)
		if url == "" {
			continue
		}
		switch strings.ToLower(path.Ext(url)) {
		case ".css":
			shell.Styles = append(shell.Styles, url)
		case ".js", ".mjs":
			if key != s.cfg.BundleAsset {
				shell.Scripts = append(shell.Scripts, url)
			}
		}
	}
	// The bundle loads last so vendor scripts are available to it.
	if bundle := strings.TrimSpace(s.cfg.BundleAsset); bundle != "" {
		if url, _ := selection.Asset(bundle); url != "" {
			shell.Scripts = append(shell.Scripts, url)
		} else {
			s.logger.Warn("mount.bundle.missing", "theme", selection.Theme, "asset", bundle)
		}
	}
	return shell, nil
}

// Render renders the app page.
func (s *Service) Render(ctx context.Context, variant string) (string, error) {
	shell, err := s.Shell(ctx, variant)
	if err != nil {
		return "", err
	}
	return s.templates.Render("templates/app.html", map[string]any{
		"title":    firstNonEmpty(shell.Title, "App"),
		"theme":    shell.Theme,
		"variant":  shell.Variant,
		"mount_id": shell.MountID,
		"scripts":  shell.Scripts,
		"styles":   shell.Styles,
		"css_vars": shell.CSSVars,
	})
}

// manifestAssetKeys lists the asset keys of the selected theme, with
// variant files overriding the base manifest.
func manifestAssetKeys(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	keys := map[string]struct{}{}
	for key := range selection.Manifest.Assets.Files {
		keys[key] = struct{}{}
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key := range variant.Assets.Files {
			keys[key] = struct{}{}
		}
	}
	out := make([]string, 0, len(keys))
	for key := range keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
