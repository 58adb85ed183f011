package paragraphs

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewParagraphRepository creates the generic repository for paragraphs.
func NewParagraphRepository(db *bun.DB) repository.Repository[*Paragraph] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Paragraph]{
		NewRecord:          func() *Paragraph { return &Paragraph{} },
		GetID:              func(p *Paragraph) uuid.UUID { return p.ID },
		SetID:              func(p *Paragraph, id uuid.UUID) { p.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(p *Paragraph) string { return p.ID.String() },
	})
}
