package carousel

import (
	"context"
	"sync"
)

// settingsBroadcaster fans settings events out to subscribers. Slow
// subscribers miss events rather than block writers.
type settingsBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan SettingsEvent
	nextID   uint64
}

func newSettingsBroadcaster() *settingsBroadcaster {
	return &settingsBroadcaster{watchers: make(map[uint64]chan SettingsEvent)}
}

func (b *settingsBroadcaster) Subscribe(ctx context.Context) (<-chan SettingsEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan SettingsEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan SettingsEvent, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

func (b *settingsBroadcaster) Broadcast(changeType ChangeType, settings Settings) {
	evt := SettingsEvent{Type: changeType, Settings: settings}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
