package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/identity"
	"github.com/goliatone/go-cms-bootstrap/internal/markdown"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/google/uuid"
)

// Fixture kinds accepted in the "kind" frontmatter key.
const (
	KindCarousel  = "carousel"
	KindParagraph = "paragraph"
)

var (
	ErrKindUnknown = errors.New("fixtures: unknown kind")
	ErrFieldType   = errors.New("fixtures: field has the wrong type")
)

// Set holds the seed inputs read from a fixture directory. Inputs carry
// deterministic IDs derived from the file name.
type Set struct {
	Carousel   []carousel.CreateItemInput
	Paragraphs []paragraphs.AddInput
}

// Load reads every *.md file in dir, in name order. For carousel files the
// Markdown body becomes the caption text; for paragraph files it becomes the
// "body" content field.
func Load(fsys fs.FS, dir string) (*Set, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("fixtures: list %s: %w", dir, err)
	}
	set := &Set{}
	for _, file := range matches {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", file, err)
		}
		meta, body, err := markdown.ParseFrontMatter(source)
		if err != nil {
			return nil, fmt.Errorf("fixtures: %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), ".md")
		if err := set.add(name, meta, strings.TrimSpace(string(body))); err != nil {
			return nil, fmt.Errorf("fixtures: %s: %w", file, err)
		}
	}
	return set, nil
}

func (s *Set) add(name string, meta map[string]any, body string) error {
	fields := frontMatter(meta)
	kind := strings.ToLower(fields.str("kind"))
	switch kind {
	case KindCarousel:
		item := carousel.CreateItemInput{
			ID:           identity.FixtureUUID(kind, name),
			ImageID:      fields.str("image_id"),
			ImageAlt:     fields.str("image_alt"),
			ImageTitle:   fields.str("image_title"),
			ImageLink:    fields.str("image_link"),
			CaptionTitle: fields.str("caption_title"),
			CaptionText:  body,
		}
		weight, err := fields.int("weight")
		if err != nil {
			return err
		}
		status, err := fields.int("status")
		if err != nil {
			return err
		}
		item.Weight = weight
		item.Status = carousel.Status(status)
		s.Carousel = append(s.Carousel, item)
	case KindParagraph:
		content := map[string]any{}
		if raw, ok := meta["content"]; ok {
			typed, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: content", ErrFieldType)
			}
			for key, value := range typed {
				content[key] = value
			}
		}
		if body != "" {
			content[paragraphs.BodyField] = body
		}
		s.Paragraphs = append(s.Paragraphs, paragraphs.AddInput{
			ID: identity.FixtureUUID(kind, name),
			Field: paragraphs.FieldRef{
				EntityType: fields.str("entity_type"),
				EntityID:   fields.str("entity_id"),
				Field:      fields.str("field"),
			},
			Type:    fields.str("type"),
			Content: content,
			OwnerID: fields.str("owner_id"),
		})
	default:
		return fmt.Errorf("%w: %q", ErrKindUnknown, kind)
	}
	return nil
}

type frontMatter map[string]any

func (f frontMatter) str(key string) string {
	switch value := f[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

func (f frontMatter) int(key string) (int, error) {
	switch value := f[key].(type) {
	case nil:
		return 0, nil
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		return int(value), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrFieldType, key)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrFieldType, key)
	}
}

// Result counts what Seed created and skipped.
type Result struct {
	Created int
	Skipped int
}

// Seed creates the fixtures that do not exist yet. Either service may be nil
// to skip that kind.
func Seed(ctx context.Context, set *Set, carouselSvc carousel.Service, paragraphSvc paragraphs.Service) (Result, error) {
	var result Result
	if set == nil {
		return result, nil
	}
	if carouselSvc != nil {
		for _, input := range set.Carousel {
			exists, err := present(func(id uuid.UUID) error {
				_, err := carouselSvc.GetItem(ctx, id)
				return err
			}, input.ID)
			if err != nil {
				return result, err
			}
			if exists {
				result.Skipped++
				continue
			}
			if _, err := carouselSvc.CreateItem(ctx, input); err != nil {
				return result, fmt.Errorf("fixtures: seed carousel item %s: %w", input.ImageID, err)
			}
			result.Created++
		}
	}
	if paragraphSvc != nil {
		for _, input := range set.Paragraphs {
			exists, err := present(func(id uuid.UUID) error {
				_, err := paragraphSvc.Get(ctx, id)
				return err
			}, input.ID)
			if err != nil {
				return result, err
			}
			if exists {
				result.Skipped++
				continue
			}
			if _, err := paragraphSvc.Add(ctx, input); err != nil {
				return result, fmt.Errorf("fixtures: seed paragraph %s: %w", input.Type, err)
			}
			result.Created++
		}
	}
	return result, nil
}

func present(get func(uuid.UUID) error, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	err := get(id)
	if err == nil {
		return true, nil
	}
	var carouselNF *carousel.NotFoundError
	var paragraphNF *paragraphs.NotFoundError
	if errors.As(err, &carouselNF) || errors.As(err, &paragraphNF) {
		return false, nil
	}
	return false, err
}
