package carousel

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewItemRepository creates the generic repository for carousel items.
func NewItemRepository(db *bun.DB) repository.Repository[*Item] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Item]{
		NewRecord:          func() *Item { return &Item{} },
		GetID:              func(item *Item) uuid.UUID { return item.ID },
		SetID:              func(item *Item, id uuid.UUID) { item.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(item *Item) string { return item.ID.String() },
	})
}
