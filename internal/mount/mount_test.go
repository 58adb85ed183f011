package mount

import (
	"context"
	"errors"
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

func TestRenderWithoutThemeUsesAssetBase(t *testing.T) {
	svc := NewService(Config{Title: "Demo", BundleAsset: "app.js"})

	out, err := svc.Render(context.Background(), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<div id="react-app"></div>`) {
		t.Fatalf("expected default mount element, got %q", out)
	}
	if !strings.Contains(out, `<script src="/assets/app.js" defer></script>`) {
		t.Fatalf("expected bundle script, got %q", out)
	}
	if !strings.Contains(out, "<title>Demo</title>") {
		t.Fatalf("expected title, got %q", out)
	}
	if strings.Contains(out, "data-theme") {
		t.Fatalf("expected no theme attribute, got %q", out)
	}
}

func TestShellResolvesManifestAssets(t *testing.T) {
	svc := NewService(Config{Theme: "react", BundleAsset: "bundle", MountElementID: "root"})

	manifest := &gotheme.Manifest{Name: "react", Version: "1.0.0"}
	manifest.Assets.Files = map[string]string{
		"bundle": "js/app.js",
		"vendor": "js/vendor.js",
		"styles": "css/app.css",
	}
	if err := svc.RegisterManifest(manifest); err != nil {
		t.Fatalf("register: %v", err)
	}

	shell, err := svc.Shell(context.Background(), "")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if shell.Theme != "react" || shell.MountID != "root" {
		t.Fatalf("unexpected shell %+v", shell)
	}
	if len(shell.Styles) != 1 || !strings.HasSuffix(shell.Styles[0], "css/app.css") {
		t.Fatalf("unexpected styles %v", shell.Styles)
	}
	if len(shell.Scripts) != 2 || !strings.HasSuffix(shell.Scripts[0], "js/vendor.js") || !strings.HasSuffix(shell.Scripts[1], "js/app.js") {
		t.Fatalf("expected vendor then bundle, got %v", shell.Scripts)
	}
}

func TestRegisterManifestRequiresName(t *testing.T) {
	svc := NewService(Config{})
	if err := svc.RegisterManifest(nil); !errors.Is(err, ErrManifestRequired) {
		t.Fatalf("expected manifest required, got %v", err)
	}
	if err := svc.RegisterManifest(&gotheme.Manifest{Version: "1.0.0"}); !errors.Is(err, ErrManifestRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
}
