package paragraphs

import (
	"context"

	"github.com/google/uuid"
)

// ParagraphRepository persists paragraphs.
type ParagraphRepository interface {
	Create(ctx context.Context, paragraph *Paragraph) (*Paragraph, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Paragraph, error)
	// ListByField returns the paragraphs of one field ordered by delta.
	ListByField(ctx context.Context, ref FieldRef) ([]*Paragraph, error)
	Update(ctx context.Context, paragraph *Paragraph) (*Paragraph, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
