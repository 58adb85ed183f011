package paragraphs

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryParagraphRepository constructs an in-memory paragraph repository.
func NewMemoryParagraphRepository() ParagraphRepository {
	return &memoryParagraphRepository{byID: make(map[uuid.UUID]*Paragraph)}
}

type memoryParagraphRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Paragraph
}

func (m *memoryParagraphRepository) Create(_ context.Context, paragraph *Paragraph) (*Paragraph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneParagraph(paragraph)
	m.byID[cloned.ID] = cloned
	return cloneParagraph(cloned), nil
}

func (m *memoryParagraphRepository) GetByID(_ context.Context, id uuid.UUID) (*Paragraph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "paragraph", Key: id.String()}
	}
	return cloneParagraph(record), nil
}

func (m *memoryParagraphRepository) ListByField(_ context.Context, ref FieldRef) ([]*Paragraph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Paragraph, 0)
	for _, record := range m.byID {
		if record.Field() == ref {
			records = append(records, cloneParagraph(record))
		}
	}
	sortByDelta(records)
	return records, nil
}

func (m *memoryParagraphRepository) Update(_ context.Context, paragraph *Paragraph) (*Paragraph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[paragraph.ID]; !ok {
		return nil, &NotFoundError{Resource: "paragraph", Key: paragraph.ID.String()}
	}
	m.byID[paragraph.ID] = cloneParagraph(paragraph)
	return cloneParagraph(paragraph), nil
}

func (m *memoryParagraphRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "paragraph", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func sortByDelta(records []*Paragraph) {
	slices.SortFunc(records, func(a, b *Paragraph) int {
		if c := cmp.Compare(a.Delta, b.Delta); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
}
