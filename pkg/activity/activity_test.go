package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitterStampsDefaults(t *testing.T) {
	hook := &CaptureHook{}
	emitter := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "bootstrap"})
	emitter.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	meta := map[string]any{"weight": 3}
	if err := emitter.Emit(context.Background(), Event{Verb: "create", ObjectType: "carousel_item", Metadata: meta}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	meta["weight"] = 9

	events := hook.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Channel != "bootstrap" || events[0].OccurredAt.IsZero() {
		t.Fatalf("expected defaults stamped, got %+v", events[0])
	}
	if events[0].Metadata["weight"] != 3 {
		t.Fatalf("expected metadata copied, got %v", events[0].Metadata["weight"])
	}
}

func TestEmitterDisabledDropsEvents(t *testing.T) {
	hook := &CaptureHook{}
	for _, emitter := range []*Emitter{nil, NewEmitter(Hooks{hook}, Config{}), NewEmitter(nil, Config{Enabled: true})} {
		if emitter.Enabled() {
			t.Fatal("expected emitter disabled")
		}
		if err := emitter.Emit(context.Background(), Event{Verb: "create"}); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(hook.Events))
	}
}

func TestHooksJoinErrors(t *testing.T) {
	failure := errors.New("sink down")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return failure }),
		nil,
		capture,
	}
	err := hooks.Notify(context.Background(), Event{Verb: "delete"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined failure, got %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatal("expected remaining hooks to run")
	}
}
