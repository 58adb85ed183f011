package carousel

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

const blockTemplate = "templates/carousel.html"

// BootstrapLibrary is attached when Settings.Assets is set.
const BootstrapLibrary = "bootstrap_simple_carousel/bootstrap"

// Slide is an active item ready for display.
type Slide struct {
	Item
	ImageURL string
	// Link is the normalised image link; empty when the item has none.
	Link string
}

// Block is the render model of the carousel block.
type Block struct {
	Slides    []Slide
	Settings  Settings
	Libraries []string
}

// BuildBlock loads active slides for account. Items whose image file cannot
// be resolved are skipped.
func (s *service) BuildBlock(ctx context.Context, account interfaces.Account) (*Block, error) {
	if err := requireAccess(account); err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	block := &Block{Settings: settings, Slides: make([]Slide, 0, len(items))}
	for _, item := range items {
		file, err := s.files.Load(ctx, item.ImageID)
		if err != nil {
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				return nil, err
			}
			s.logger.Warn("carousel.block.file_missing", "item_id", item.ID.String(), "image_id", item.ImageID)
			continue
		}
		imageURL, err := s.urls.Styled(file, settings.ImageStyle)
		if err != nil {
			s.logger.Warn("carousel.block.image_style_failed", "style", settings.ImageStyle, "error", err)
			imageURL = s.urls.Original(file)
		}
		block.Slides = append(block.Slides, Slide{
			Item:     *item,
			ImageURL: imageURL,
			Link:     NormalizeLink(item.ImageLink),
		})
	}
	if settings.Assets {
		block.Libraries = append(block.Libraries, BootstrapLibrary)
	}
	return block, nil
}

// RenderBlock renders the Bootstrap carousel markup. No slides render
// nothing.
func (s *service) RenderBlock(ctx context.Context, account interfaces.Account) (string, error) {
	block, err := s.BuildBlock(ctx, account)
	if err != nil {
		return "", err
	}
	if len(block.Slides) == 0 {
		return "", nil
	}

	slides := make([]map[string]any, 0, len(block.Slides))
	for idx, slide := range block.Slides {
		slides = append(slides, map[string]any{
			"index":         idx,
			"image_url":     slide.ImageURL,
			"image_alt":     slide.ImageAlt,
			"image_title":   slide.ImageTitle,
			"link":          slide.Link,
			"caption_title": slide.CaptionTitle,
			"caption_text":  slide.CaptionText,
		})
	}
	out, err := s.templates.Render(blockTemplate, map[string]any{
		"id":         "bootstrap-simple-carousel",
		"slides":     slides,
		"interval":   block.Settings.Interval,
		"wrap":       block.Settings.Wrap,
		"pause":      block.Settings.Pause,
		"indicators": block.Settings.Indicators,
		"controls":   block.Settings.Controls,
		"image_type": string(block.Settings.ImageType),
	})
	if err != nil {
		return "", fmt.Errorf("carousel: render block: %w", err)
	}
	return out, nil
}

// NormalizeLink keeps absolute links and turns host-less links into
// site-internal paths.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if parsed, err := url.Parse(link); err == nil && parsed.Host != "" {
		return link
	}
	return "/" + strings.TrimLeft(link, "/")
}

func sortedKeys(values map[string]string) []string {
	return slices.Sorted(maps.Keys(values))
}
