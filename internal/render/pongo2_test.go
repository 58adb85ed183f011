package render

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderNamedTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.html": {Data: []byte(`<p>{{ name }}</p>{{ markup|safe }}`)},
	}
	engine := New(fsys)

	got, err := engine.Render("hello.html", map[string]any{
		"name":   "<b>Ana</b>",
		"markup": "<i>kept</i>",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got != "<p>&lt;b&gt;Ana&lt;/b&gt;</p><i>kept</i>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	if _, err := New(fstest.MapFS{}).Render("missing.html", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
	if _, err := New(nil).Render("any.html", nil); err == nil {
		t.Fatal("expected error without template source")
	}
}

func TestRenderStringCachesAndReportsErrors(t *testing.T) {
	engine := New(nil, WithInlineCacheSize(1))

	got, err := engine.RenderString("{{ paragraph_name }} #{{ paragraph_id }}", map[string]any{
		"paragraph_name": "Text",
		"paragraph_id":   "42",
	})
	if err != nil || got != "Text #42" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil || !strings.Contains(err.Error(), "compile") {
		t.Fatalf("expected compile error, got %v", err)
	}
	if got, err := engine.RenderString("   ", nil); err != nil || got != "" {
		t.Fatalf("expected blank template to render empty, got %q, %v", got, err)
	}
}
