package activity

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"
)

// Event describes a mutation worth auditing.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives emitted events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, event Event) error

func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	return fn(ctx, event)
}

// Hooks fans an event out to every hook, joining their errors.
type Hooks []Hook

func (h Hooks) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Config toggles emission and stamps a default channel.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter enriches events and forwards them to hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
	now   func() time.Time
}

// NewEmitter constructs an emitter. A nil or disabled emitter drops events.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg, now: time.Now}
}

// Enabled reports whether Emit forwards events.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit fills channel and timestamp defaults and notifies hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() || strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.cfg.Channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}
	event.Metadata = maps.Clone(event.Metadata)
	return e.hooks.Notify(ctx, event)
}

// CaptureHook records events in memory.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

func (c *CaptureHook) Notify(_ context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
	return nil
}

// Snapshot returns a copy of the captured events.
func (c *CaptureHook) Snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.Events...)
}
