package carousel

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the publication state of a carousel item.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// Field limits mirrored by validation and the storage schema.
const (
	CaptionTitleMaxLength = 100
	StringMaxLength       = 255
)

// Item is one slide of the carousel.
type Item struct {
	bun.BaseModel `bun:"table:carousel_items,alias:ci"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ImageID      string    `bun:"image_id,notnull" json:"image_id"`
	ImageAlt     string    `bun:"image_alt" json:"image_alt,omitempty"`
	ImageTitle   string    `bun:"image_title" json:"image_title,omitempty"`
	ImageLink    string    `bun:"image_link" json:"image_link,omitempty"`
	CaptionTitle string    `bun:"caption_title" json:"caption_title,omitempty"`
	CaptionText  string    `bun:"caption_text" json:"caption_text,omitempty"`
	Weight       int       `bun:"weight,notnull,default:0" json:"weight"`
	Status       Status    `bun:"status,notnull,default:0" json:"status"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Active reports whether the item is shown in the block.
func (i *Item) Active() bool {
	return i != nil && i.Status == StatusActive
}

// ImageType is the CSS class applied to slide images.
type ImageType string

const (
	ImageTypeDefault ImageType = "img-default"
	ImageTypeFluid   ImageType = "img-fluid"
	ImageTypeCircle  ImageType = "img-circle"
)

// OriginalImageStyle selects the unprocessed upload.
const OriginalImageStyle = "original"

// Settings drive how the carousel block renders.
type Settings struct {
	Interval   int       `json:"interval"`
	Wrap       bool      `json:"wrap"`
	Pause      bool      `json:"pause"`
	Indicators bool      `json:"indicators"`
	Controls   bool      `json:"controls"`
	Assets     bool      `json:"assets"`
	ImageType  ImageType `json:"image_type"`
	ImageStyle string    `json:"image_style"`
}

// DefaultSettings returns the install defaults.
func DefaultSettings() Settings {
	return Settings{
		Interval:   5000,
		Wrap:       true,
		Pause:      true,
		Indicators: true,
		Controls:   true,
		ImageType:  ImageTypeDefault,
		ImageStyle: OriginalImageStyle,
	}
}

var (
	ErrItemIDRequired      = errors.New("carousel: item id required")
	ErrImageRequired       = errors.New("carousel: image id required")
	ErrStatusInvalid       = errors.New("carousel: status must be 0 or 1")
	ErrSettingsNotFound    = errors.New("carousel: settings not found")
	ErrImageStyleUnknown   = errors.New("carousel: image style unknown")
	ErrFileNotFound        = errors.New("carousel: file not found")
	ErrAccessDenied        = errors.New("carousel: access denied")
	ErrRepositoryNotConfig = errors.New("carousel: repository not configured")
)

// NotFoundError is returned when a carousel resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func cloneItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	cloned := *item
	return &cloned
}
