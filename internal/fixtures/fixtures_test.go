package fixtures

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/identity"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
)

func TestLoadReadsCarouselAndParagraphFixtures(t *testing.T) {
	set, err := Load(os.DirFS("testdata"), ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set.Carousel) != 1 || len(set.Paragraphs) != 2 {
		t.Fatalf("unexpected set sizes: %d carousel, %d paragraphs", len(set.Carousel), len(set.Paragraphs))
	}

	hero := set.Carousel[0]
	if hero.ID != identity.FixtureUUID(KindCarousel, "01-hero") {
		t.Fatalf("expected deterministic id, got %s", hero.ID)
	}
	if hero.ImageID != "10" || hero.Weight != 5 || hero.Status != carousel.StatusActive {
		t.Fatalf("unexpected carousel input %+v", hero)
	}
	if hero.CaptionText != "Sunrise over the ridge." || hero.ImageLink != "about" {
		t.Fatalf("unexpected caption or link %+v", hero)
	}

	intro := set.Paragraphs[0]
	if intro.Type != "text" || intro.Field.EntityID != "12" || intro.OwnerID != "7" {
		t.Fatalf("unexpected paragraph input %+v", intro)
	}
	if intro.Content["title"] != "Introduction" || intro.Content[paragraphs.BodyField] != "Paragraphs are grouped into **tabs** by type." {
		t.Fatalf("unexpected content %#v", intro.Content)
	}
	if _, ok := set.Paragraphs[1].Content[paragraphs.BodyField]; ok {
		t.Fatal("empty body must not set a body field")
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/bad.md": {Data: []byte("---\nkind: banner\n---\n")},
	}
	if _, err := Load(fsys, "seed"); !errors.Is(err, ErrKindUnknown) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/bad.md": {Data: []byte("---\nkind: carousel\nimage_id: x\nweight: heavy\n---\n")},
	}
	if _, err := Load(fsys, "seed"); !errors.Is(err, ErrFieldType) {
		t.Fatalf("expected field type error, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	set, err := Load(os.DirFS("testdata"), ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	carouselSvc := carousel.NewService(carousel.NewMemoryItemRepository(), carousel.NewMemorySettingsRepository())
	registry := paragraphs.NewTypeRegistry()
	for _, bundle := range []string{"text", "video"} {
		if err := registry.Register(paragraphs.ParagraphType{Bundle: bundle}); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	paragraphSvc := paragraphs.NewService(paragraphs.NewMemoryParagraphRepository(), registry)

	first, err := Seed(ctx, set, carouselSvc, paragraphSvc)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if first.Created != 3 || first.Skipped != 0 {
		t.Fatalf("unexpected first seed result %+v", first)
	}
	second, err := Seed(ctx, set, carouselSvc, paragraphSvc)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if second.Created != 0 || second.Skipped != 3 {
		t.Fatalf("unexpected reseed result %+v", second)
	}

	list, err := paragraphSvc.ListByField(ctx, paragraphs.FieldRef{EntityType: "node", EntityID: "12", Field: "field_tabs"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Type != "text" || list[1].Delta != 1 {
		t.Fatalf("unexpected seeded paragraphs %+v", list)
	}
}
