package paragraphs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/internal/markdown"
	"github.com/goliatone/go-cms-bootstrap/internal/render"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/pkg/activity"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	"github.com/google/uuid"
)

// Service stores the paragraphs of host fields and projects them onto tab items.
type Service interface {
	Types() *TypeRegistry

	Add(ctx context.Context, input AddInput) (*Paragraph, error)
	Get(ctx context.Context, id uuid.UUID) (*Paragraph, error)
	ListByField(ctx context.Context, ref FieldRef) ([]*Paragraph, error)
	Update(ctx context.Context, input UpdateInput) (*Paragraph, error)
	Duplicate(ctx context.Context, req DuplicateRequest) (*Paragraph, error)
	Delete(ctx context.Context, req DeleteRequest) error

	// Items renders the paragraphs of ref and returns them as tab items.
	Items(ctx context.Context, ref FieldRef) ([]tabs.Item, error)
	// RenderPayload renders a single paragraph body.
	RenderPayload(ctx context.Context, paragraph *Paragraph) (string, error)
}

// AddInput creates a paragraph of Type at the end of Field. ID is optional.
type AddInput struct {
	ID      uuid.UUID
	Field   FieldRef
	Type    string
	Content map[string]any
	OwnerID string
	ActorID string
}

// UpdateInput replaces the content of a paragraph and bumps its revision.
type UpdateInput struct {
	ID      uuid.UUID
	Content map[string]any
	ActorID string
}

// DuplicateRequest clones a paragraph to the end of its field.
type DuplicateRequest struct {
	ID      uuid.UUID
	ActorID string
}

// DeleteRequest removes a paragraph.
type DeleteRequest struct {
	ID      uuid.UUID
	ActorID string
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// NestedRenderer renders the paragraphs stored on a nested field. ctx is
// already one rendering level deeper than the parent field.
type NestedRenderer func(ctx context.Context, ref FieldRef) (string, error)

// ServiceOption configures the paragraphs service.
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

// WithMarkdown overrides the body renderer.
func WithMarkdown(renderer *markdown.Renderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.markdown = renderer
		}
	}
}

// WithTemplates overrides the renderer used for bundle templates.
func WithTemplates(renderer interfaces.TemplateRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// WithNestedRenderer wires the renderer used for bundles with a NestedField.
func WithNestedRenderer(renderer NestedRenderer) ServiceOption {
	return func(s *service) {
		s.nested = renderer
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
	repo      ParagraphRepository
	registry  *TypeRegistry
	markdown  *markdown.Renderer
	templates interfaces.TemplateRenderer
	logger    interfaces.Logger
	activity  *activity.Emitter
	nested    NestedRenderer
	now       func() time.Time
	id        IDGenerator
}

// NewService constructs a paragraphs service. Paragraph bodies are rendered
// in safe mode since they hold editor input.
func NewService(repo ParagraphRepository, registry *TypeRegistry, opts ...ServiceOption) Service {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	s := &service{
		repo:      repo,
		registry:  registry,
		markdown:  markdown.NewRenderer(markdown.Options{SafeMode: true}),
		templates: render.New(nil),
		logger:    logging.NoOp(),
		activity:  activity.NewEmitter(nil, activity.Config{}),
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Types() *TypeRegistry {
	return s.registry
}

func (s *service) Add(ctx context.Context, input AddInput) (*Paragraph, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfig
	}
	ref := input.Field.normalized()
	if !ref.Valid() {
		return nil, ErrHostRequired
	}
	bundle := normalizeBundle(input.Type)
	if bundle == "" {
		return nil, ErrTypeRequired
	}
	if _, ok := s.registry.Get(bundle); !ok {
		return nil, ErrTypeUnknown
	}
	if !s.registry.Allows(ref.Field, bundle) {
		return nil, ErrTypeNotAllowed
	}
	if err := s.registry.Validate(bundle, input.Content); err != nil {
		return nil, err
	}

	delta, err := s.nextDelta(ctx, ref)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	id := input.ID
	if id == uuid.Nil {
		id = s.id()
	}
	created, err := s.repo.Create(ctx, &Paragraph{
		ID:         id,
		ParentType: ref.EntityType,
		ParentID:   ref.EntityID,
		FieldName:  ref.Field,
		Type:       bundle,
		Delta:      delta,
		RevisionID: 1,
		OwnerID:    strings.TrimSpace(input.OwnerID),
		Content:    cloneContent(input.Content),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("paragraphs.paragraph.created", "paragraph_id", created.ID.String(), "type", bundle, "field", ref.Field, "delta", delta)
	s.emitActivity(ctx, input.ActorID, "create", created, nil)
	return created, nil
}

func (s *service) nextDelta(ctx context.Context, ref FieldRef) (int, error) {
	existing, err := s.repo.ListByField(ctx, ref)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, p := range existing {
		if p.Delta >= next {
			next = p.Delta + 1
		}
	}
	return next, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Paragraph, error) {
	if id == uuid.Nil {
		return nil, ErrParagraphIDRequired
	}
	if s.repo == nil {
		return nil, ErrRepositoryNotConfig
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByField(ctx context.Context, ref FieldRef) ([]*Paragraph, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfig
	}
	ref = ref.normalized()
	if !ref.Valid() {
		return nil, ErrHostRequired
	}
	return s.repo.ListByField(ctx, ref)
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*Paragraph, error) {
	paragraph, err := s.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Validate(paragraph.Type, input.Content); err != nil {
		return nil, err
	}
	paragraph.Content = cloneContent(input.Content)
	paragraph.RevisionID++
	paragraph.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, paragraph)
	if err != nil {
		return nil, err
	}
	s.logger.Info("paragraphs.paragraph.updated", "paragraph_id", updated.ID.String(), "revision_id", updated.RevisionID)
	s.emitActivity(ctx, input.ActorID, "update", updated, map[string]any{"revision_id": updated.RevisionID})
	return updated, nil
}

func (s *service) Duplicate(ctx context.Context, req DuplicateRequest) (*Paragraph, error) {
	source, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	delta, err := s.nextDelta(ctx, source.Field())
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	clone := cloneParagraph(source)
	clone.ID = s.id()
	clone.Delta = delta
	clone.RevisionID = 1
	clone.CreatedAt = now
	clone.UpdatedAt = now

	created, err := s.repo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	s.logger.Info("paragraphs.paragraph.duplicated", "paragraph_id", created.ID.String(), "source_id", source.ID.String())
	s.emitActivity(ctx, req.ActorID, "duplicate", created, map[string]any{"source_id": source.ID.String()})
	return created, nil
}

// Delete removes the paragraph and closes the gap it leaves in the field's
// deltas.
func (s *service) Delete(ctx context.Context, req DeleteRequest) error {
	paragraph, err := s.Get(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, paragraph.ID); err != nil {
		return err
	}
	siblings, err := s.repo.ListByField(ctx, paragraph.Field())
	if err != nil {
		return err
	}
	for idx, sibling := range siblings {
		if sibling.Delta == idx {
			continue
		}
		sibling.Delta = idx
		if _, err := s.repo.Update(ctx, sibling); err != nil {
			return err
		}
	}
	s.logger.Info("paragraphs.paragraph.deleted", "paragraph_id", paragraph.ID.String(), "field", paragraph.FieldName)
	s.emitActivity(ctx, req.ActorID, "delete", paragraph, nil)
	return nil
}

func (s *service) Items(ctx context.Context, ref FieldRef) ([]tabs.Item, error) {
	records, err := s.ListByField(ctx, ref)
	if err != nil {
		return nil, err
	}
	items := make([]tabs.Item, 0, len(records))
	for _, record := range records {
		payload, err := s.RenderPayload(ctx, record)
		if err != nil {
			s.logger.Warn("paragraphs.render.failed", "paragraph_id", record.ID.String(), "type", record.Type, "error", err)
			payload = ""
		}
		items = append(items, tabs.Item{
			Discriminator: record.Type,
			OrderIndex:    record.Delta,
			Payload:       payload,
			Identity:      record.ID.String(),
			RevisionID:    strconv.Itoa(record.RevisionID),
		})
	}
	return items, nil
}

// RenderPayload renders the Markdown body and, when the bundle defines one,
// wraps it in the bundle template. A bundle NestedField is rendered through
// the nested renderer and appended to the body when there is no template.
func (s *service) RenderPayload(ctx context.Context, paragraph *Paragraph) (string, error) {
	if paragraph == nil {
		return "", nil
	}
	body := ""
	if text, ok := paragraph.Content[BodyField].(string); ok && strings.TrimSpace(text) != "" {
		html, err := s.markdown.RenderString(text)
		if err != nil {
			return "", err
		}
		body = html
	}
	def, ok := s.registry.Get(paragraph.Type)
	if !ok {
		return body, nil
	}
	nested := s.renderNested(ctx, paragraph, def.NestedField)
	if strings.TrimSpace(def.Template) == "" {
		return body + nested, nil
	}
	data := cloneContent(paragraph.Content)
	if data == nil {
		data = map[string]any{}
	}
	data["body_html"] = body
	data["nested_html"] = nested
	data["paragraph_id"] = paragraph.ID.String()
	data["paragraph_type"] = paragraph.Type
	return s.templates.RenderString(def.Template, data)
}

func (s *service) renderNested(ctx context.Context, paragraph *Paragraph, field string) string {
	field = strings.TrimSpace(field)
	if field == "" || s.nested == nil {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ref := FieldRef{EntityType: EntityType, EntityID: paragraph.ID.String(), Field: field}
	out, err := s.nested(tabs.NestedContext(ctx), ref)
	if err != nil {
		s.logger.Warn("paragraphs.render.nested_failed", "paragraph_id", ref.EntityID, "field", field, "error", err)
		return ""
	}
	return out
}

func (s *service) emitActivity(ctx context.Context, actor, verb string, paragraph *Paragraph, meta map[string]any) {
	if !s.activity.Enabled() || paragraph == nil {
		return
	}
	metadata := map[string]any{
		"type":        paragraph.Type,
		"entity_type": paragraph.ParentType,
		"entity_id":   paragraph.ParentID,
		"field":       paragraph.FieldName,
		"delta":       paragraph.Delta,
	}
	for key, value := range meta {
		metadata[key] = value
	}
	event := activity.Event{
		Verb:       verb,
		ActorID:    actor,
		ObjectType: "paragraph",
		ObjectID:   paragraph.ID.String(),
		Metadata:   metadata,
	}
	if err := s.activity.Emit(ctx, event); err != nil {
		s.logger.Warn("paragraphs.activity.emit_failed", "verb", verb, "error", err)
	}
}
