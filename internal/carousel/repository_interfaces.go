package carousel

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository persists carousel items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// ListAll returns every item, heaviest first.
	ListAll(ctx context.Context) ([]*Item, error)
	// ListActive returns items with StatusActive, heaviest first.
	ListActive(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository persists the single carousel settings record and
// emits change notifications.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan SettingsEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// SettingsEvent reports settings mutations to subscribers.
type SettingsEvent struct {
	Type     ChangeType
	Settings Settings
}
