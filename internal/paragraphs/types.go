package paragraphs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BodyField is the content key rendered as Markdown.
const BodyField = "body"

// EntityType is the host entity type of paragraphs nested inside a paragraph.
const EntityType = "paragraph"

// Paragraph is one item stored in a host entity's paragraphs field.
type Paragraph struct {
	bun.BaseModel `bun:"table:paragraphs,alias:p"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	ParentType string         `bun:"parent_type,notnull" json:"parent_type"`
	ParentID   string         `bun:"parent_id,notnull" json:"parent_id"`
	FieldName  string         `bun:"field_name,notnull" json:"field_name"`
	Type       string         `bun:"type,notnull" json:"type"`
	Delta      int            `bun:"delta,notnull,default:0" json:"delta"`
	RevisionID int            `bun:"revision_id,notnull,default:1" json:"revision_id"`
	OwnerID    string         `bun:"owner_id" json:"owner_id,omitempty"`
	Content    map[string]any `bun:"content,type:jsonb" json:"content,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Field returns the host field the paragraph belongs to.
func (p *Paragraph) Field() FieldRef {
	return FieldRef{EntityType: p.ParentType, EntityID: p.ParentID, Field: p.FieldName}
}

// FieldRef addresses a paragraphs field on a host entity.
type FieldRef struct {
	EntityType string
	EntityID   string
	Field      string
}

func (r FieldRef) normalized() FieldRef {
	return FieldRef{
		EntityType: strings.TrimSpace(r.EntityType),
		EntityID:   strings.TrimSpace(r.EntityID),
		Field:      strings.TrimSpace(r.Field),
	}
}

// Valid reports whether every part of the reference is set.
func (r FieldRef) Valid() bool {
	n := r.normalized()
	return n.EntityType != "" && n.EntityID != "" && n.Field != ""
}

// GroupID is the tab group identifier used for preferences.
func (r FieldRef) GroupID() string {
	return r.Field
}

// ParagraphType is a registered bundle items can be created from.
type ParagraphType struct {
	ID          uuid.UUID      `json:"id"`
	Bundle      string         `json:"bundle"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
	// Template is an optional pongo2 template wrapping the rendered body.
	// The Markdown body is exposed as body_html next to the content fields.
	Template string `json:"template,omitempty"`
	// NestedField names a paragraph field on the bundle itself. Its items are
	// rendered as nested tabs, exposed to Template as nested_html.
	NestedField string `json:"nested_field,omitempty"`
}

var (
	ErrHostRequired          = errors.New("paragraphs: entity type, entity id and field are required")
	ErrTypeRequired          = errors.New("paragraphs: type is required")
	ErrTypeUnknown           = errors.New("paragraphs: type is not registered")
	ErrTypeNotAllowed        = errors.New("paragraphs: type is not allowed on field")
	ErrParagraphIDRequired   = errors.New("paragraphs: paragraph id required")
	ErrBundleRequired        = errors.New("paragraphs: bundle is required")
	ErrRepositoryNotConfig   = errors.New("paragraphs: repository not configured")
	ErrRegistryNotConfigured = errors.New("paragraphs: type registry not configured")
)

// NotFoundError is returned when a paragraph cannot be located.
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

func cloneParagraph(p *Paragraph) *Paragraph {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Content = cloneContent(p.Content)
	return &cloned
}

func cloneContent(content map[string]any) map[string]any {
	if content == nil {
		return nil
	}
	out := make(map[string]any, len(content))
	for key, value := range content {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneContent(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
