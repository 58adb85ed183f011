package carousel

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryItemRepository constructs an in-memory item repository.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{byID: make(map[uuid.UUID]*Item)}
}

type memoryItemRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Item
	order []uuid.UUID
}

func (m *memoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneItem(item)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloneItem(cloned), nil
}

func (m *memoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "carousel_item", Key: id.String()}
	}
	return cloneItem(record), nil
}

func (m *memoryItemRepository) ListAll(_ context.Context) ([]*Item, error) {
	return m.list(func(*Item) bool { return true }), nil
}

func (m *memoryItemRepository) ListActive(_ context.Context) ([]*Item, error) {
	return m.list((*Item).Active), nil
}

func (m *memoryItemRepository) list(keep func(*Item) bool) []*Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Item, 0, len(m.order))
	for _, id := range m.order {
		if record := m.byID[id]; keep(record) {
			records = append(records, cloneItem(record))
		}
	}
	sortByWeight(records)
	return records
}

func (m *memoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "carousel_item", Key: item.ID.String()}
	}
	m.byID[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (m *memoryItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "carousel_item", Key: id.String()}
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(candidate uuid.UUID) bool { return candidate == id })
	return nil
}

// sortByWeight orders heaviest first; equal weights keep insertion order.
func sortByWeight(items []*Item) {
	slices.SortStableFunc(items, func(a, b *Item) int {
		return b.Weight - a.Weight
	})
}

// MemorySettingsRepository stores carousel settings in memory.
type MemorySettingsRepository struct {
	mu          sync.RWMutex
	settings    *Settings
	broadcaster *settingsBroadcaster
}

// NewMemorySettingsRepository constructs an in-memory settings repository.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{broadcaster: newSettingsBroadcaster()}
}

// Get returns the stored settings or ErrSettingsNotFound.
func (r *MemorySettingsRepository) Get(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return Settings{}, ErrSettingsNotFound
	}
	return *r.settings, nil
}

// Upsert stores settings. Unchanged settings emit no event.
func (r *MemorySettingsRepository) Upsert(_ context.Context, settings Settings) (Settings, error) {
	r.mu.Lock()
	created := r.settings == nil
	unchanged := !created && *r.settings == settings
	copied := settings
	r.settings = &copied
	r.mu.Unlock()

	if unchanged {
		return settings, nil
	}
	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(changeType, settings)
	return settings, nil
}

// Delete clears stored settings.
func (r *MemorySettingsRepository) Delete(context.Context) error {
	r.mu.Lock()
	if r.settings == nil {
		r.mu.Unlock()
		return ErrSettingsNotFound
	}
	r.settings = nil
	r.mu.Unlock()

	r.broadcaster.Broadcast(ChangeDeleted, Settings{})
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *MemorySettingsRepository) Subscribe(ctx context.Context) (<-chan SettingsEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
