package carousel

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/internal/render"
	"github.com/goliatone/go-cms-bootstrap/pkg/activity"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	"github.com/google/uuid"
)

// Service manages carousel items and settings and assembles the block.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*Item, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*Item, error)
	DeleteItem(ctx context.Context, req DeleteItemRequest) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	ListActiveItems(ctx context.Context) ([]*Item, error)

	Settings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, input SaveSettingsInput) (Settings, error)
	ImageStyleOptions() []Option

	Statuses() map[Status]string
	RenderImage(ctx context.Context, imageID, style string, params ImageParams) (string, error)
	RenderLink(url, title string, attributes map[string]string) string

	BuildBlock(ctx context.Context, account interfaces.Account) (*Block, error)
	RenderBlock(ctx context.Context, account interfaces.Account) (string, error)
}

// CreateItemInput captures a new slide. ID is optional; fixtures set it so
// reseeding is idempotent.
type CreateItemInput struct {
	ID           uuid.UUID
	ImageID      string
	ImageAlt     string
	ImageTitle   string
	ImageLink    string
	CaptionTitle string
	CaptionText  string
	Weight       int
	Status       Status
	ActorID      string
}

// UpdateItemInput replaces the mutable fields of a slide. Nil fields are kept.
type UpdateItemInput struct {
	ID           uuid.UUID
	ImageID      *string
	ImageAlt     *string
	ImageTitle   *string
	ImageLink    *string
	CaptionTitle *string
	CaptionText  *string
	Weight       *int
	Status       *Status
	ActorID      string
}

type DeleteItemRequest struct {
	ID      uuid.UUID
	ActorID string
}

// SaveSettingsInput stores new settings on behalf of ActorID.
type SaveSettingsInput struct {
	Settings Settings
	ActorID  string
}

// ImageParams are the alt and title attributes of a rendered image.
type ImageParams struct {
	Alt   string
	Title string
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures the carousel service.
type ServiceOption func(*service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFileStore wires the store used to resolve slide images.
func WithFileStore(files FileStore) ServiceOption {
	return func(s *service) {
		if files != nil {
			s.files = files
		}
	}
}

// WithURLBuilder sets the files base and known image styles.
func WithURLBuilder(urls URLBuilder) ServiceOption {
	return func(s *service) { s.urls = urls }
}

// WithDefaults sets the settings used until some are stored.
func WithDefaults(settings Settings) ServiceOption {
	return func(s *service) { s.defaults = settings }
}

// WithTemplates overrides the renderer used for the block markup.
func WithTemplates(renderer interfaces.TemplateRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// WithActivityEmitter wires the emitter used for activity records.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

type service struct {
	items     ItemRepository
	settings  SettingsRepository
	files     FileStore
	urls      URLBuilder
	defaults  Settings
	templates interfaces.TemplateRenderer
	logger    interfaces.Logger
	activity  *activity.Emitter
	now       func() time.Time
	id        IDGenerator
}

// NewService constructs a carousel service.
func NewService(items ItemRepository, settings SettingsRepository, opts ...ServiceOption) Service {
	s := &service{
		items:    items,
		settings: settings,
		files:    NewMemoryFileStore(),
		urls:     URLBuilder{Base: "/files"},
		defaults: DefaultSettings(),
		logger:   logging.NoOp(),
		activity: activity.NewEmitter(nil, activity.Config{}),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		s.templates = render.New(templateFS)
	}
	return s
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*Item, error) {
	now := s.now().UTC()
	id := input.ID
	if id == uuid.Nil {
		id = s.id()
	}
	item := &Item{
		ID:           id,
		ImageID:      strings.TrimSpace(input.ImageID),
		ImageAlt:     strings.TrimSpace(input.ImageAlt),
		ImageTitle:   strings.TrimSpace(input.ImageTitle),
		ImageLink:    strings.TrimSpace(input.ImageLink),
		CaptionTitle: strings.TrimSpace(input.CaptionTitle),
		CaptionText:  strings.TrimSpace(input.CaptionText),
		Weight:       input.Weight,
		Status:       input.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if item.ImageID == "" {
		return nil, ErrImageRequired
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("carousel.item.created", "item_id", created.ID.String(), "weight", created.Weight, "status", int(created.Status))
	s.emitActivity(ctx, input.ActorID, "create", created.ID, map[string]any{
		"image_id": created.ImageID,
		"weight":   created.Weight,
		"status":   int(created.Status),
	})
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*Item, error) {
	if input.ID == uuid.Nil {
		return nil, ErrItemIDRequired
	}
	item, err := s.items.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&item.ImageID, input.ImageID)
	assign(&item.ImageAlt, input.ImageAlt)
	assign(&item.ImageTitle, input.ImageTitle)
	assign(&item.ImageLink, input.ImageLink)
	assign(&item.CaptionTitle, input.CaptionTitle)
	assign(&item.CaptionText, input.CaptionText)
	if input.Weight != nil {
		item.Weight = *input.Weight
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if item.ImageID == "" {
		return nil, ErrImageRequired
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.UpdatedAt = s.now().UTC()

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("carousel.item.updated", "item_id", updated.ID.String())
	s.emitActivity(ctx, input.ActorID, "update", updated.ID, map[string]any{
		"weight": updated.Weight,
		"status": int(updated.Status),
	})
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, req DeleteItemRequest) error {
	if req.ID == uuid.Nil {
		return ErrItemIDRequired
	}
	if err := s.items.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.logger.Info("carousel.item.deleted", "item_id", req.ID.String())
	s.emitActivity(ctx, req.ActorID, "delete", req.ID, nil)
	return nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	if id == uuid.Nil {
		return nil, ErrItemIDRequired
	}
	return s.items.GetByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context) ([]*Item, error) {
	return s.items.ListAll(ctx)
}

func (s *service) ListActiveItems(ctx context.Context) ([]*Item, error) {
	return s.items.ListActive(ctx)
}

// Settings returns the stored settings, or the configured defaults when
// nothing has been saved yet.
func (s *service) Settings(ctx context.Context) (Settings, error) {
	if s.settings == nil {
		return s.defaults, nil
	}
	stored, err := s.settings.Get(ctx)
	if errors.Is(err, ErrSettingsNotFound) {
		return s.defaults, nil
	}
	return stored, err
}

func (s *service) SaveSettings(ctx context.Context, input SaveSettingsInput) (Settings, error) {
	if s.settings == nil {
		return Settings{}, ErrRepositoryNotConfig
	}
	settings := input.Settings
	settings.ImageStyle = strings.TrimSpace(settings.ImageStyle)
	if settings.ImageStyle == "" {
		settings.ImageStyle = OriginalImageStyle
	}
	if err := settings.ValidateWith(s.urls.Styles); err != nil {
		return Settings{}, err
	}
	stored, err := s.settings.Upsert(ctx, settings)
	if err != nil {
		return Settings{}, err
	}
	s.logger.Info("carousel.settings.saved", "interval", stored.Interval, "image_style", stored.ImageStyle)
	s.emitActivity(ctx, input.ActorID, "update", uuid.Nil, map[string]any{
		"object":      "carousel_settings",
		"image_type":  string(stored.ImageType),
		"image_style": stored.ImageStyle,
	})
	return stored, nil
}

func (s *service) ImageStyleOptions() []Option {
	return ImageStyleOptions(s.urls.Styles)
}

func (s *service) Statuses() map[Status]string {
	return Statuses()
}

// RenderImage renders an <img> for imageID through style. A missing file
// renders nothing.
func (s *service) RenderImage(ctx context.Context, imageID, style string, params ImageParams) (string, error) {
	file, err := s.files.Load(ctx, imageID)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", nil
		}
		return "", err
	}
	url, err := s.urls.Styled(file, style)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<img src="%s" alt="%s" title="%s">`,
		html.EscapeString(url), html.EscapeString(params.Alt), html.EscapeString(params.Title)), nil
}

// RenderLink renders an anchor with escaped title and attributes.
func (s *service) RenderLink(url, title string, attributes map[string]string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(url))
	b.WriteByte('"')
	for _, key := range sortedKeys(attributes) {
		if key == "href" {
			continue
		}
		fmt.Fprintf(&b, ` %s="%s"`, key, html.EscapeString(attributes[key]))
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(title))
	b.WriteString("</a>")
	return b.String()
}

func (s *service) emitActivity(ctx context.Context, actor, verb string, objectID uuid.UUID, meta map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	objectType := "carousel_item"
	id := ""
	if objectID != uuid.Nil {
		id = objectID.String()
	} else {
		objectType = "carousel_settings"
	}
	event := activity.Event{
		Verb:       verb,
		ActorID:    actor,
		ObjectType: objectType,
		ObjectID:   id,
		Metadata:   meta,
	}
	if err := s.activity.Emit(ctx, event); err != nil {
		s.logger.Warn("carousel.activity.emit_failed", "verb", verb, "error", err)
	}
}

// requireAccess enforces "access content" for block rendering.
func requireAccess(account interfaces.Account) error {
	if account == nil || !account.HasPermission(permissions.AccessContent) {
		return ErrAccessDenied
	}
	return nil
}
