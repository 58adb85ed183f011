package tabs

import "testing"

func navigationABC() []NavigationEntry {
	return []NavigationEntry{{Discriminator: "A"}, {Discriminator: "B"}, {Discriminator: "C"}}
}

func TestResolveUsesPreference(t *testing.T) {
	got, ok := Resolve("g1", navigationABC(), Preference{"g1": "C"})
	if !ok || got != "C" {
		t.Fatalf("expected C, got %q", got)
	}
}

func TestResolveFallsBackWhenPreferenceUnknown(t *testing.T) {
	cases := []Preference{
		{"g1": "Z"},
		{"g2": "C"},
		{"g1": ""},
		nil,
	}
	for _, pref := range cases {
		got, ok := Resolve("g1", navigationABC(), pref)
		if !ok || got != "A" {
			t.Fatalf("preference %v: expected fallback A, got %q", pref, got)
		}
	}
}

func TestResolveEmptyNavigation(t *testing.T) {
	if got, ok := Resolve("g1", nil, Preference{"g1": "A"}); ok || got != "" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	pref := Preference{"g1": "B", "g2": "C"}
	first, _ := Resolve("g1", navigationABC(), pref)
	for range 10 {
		if got, _ := Resolve("g1", navigationABC(), pref); got != first {
			t.Fatalf("expected %q on every call, got %q", first, got)
		}
	}
}

func TestActivateMarksExactlyOnePair(t *testing.T) {
	result := Build([]Item{{Discriminator: "B"}}, allowedABC(), BuildOptions{})
	result.Activate("A")
	result.Activate("C")

	activeEntries, activePanels := 0, 0
	for _, entry := range result.Navigation {
		if entry.Active {
			activeEntries++
			if entry.Discriminator != "C" {
				t.Fatalf("unexpected active entry %s", entry.Discriminator)
			}
		}
	}
	for key, panel := range result.Panels {
		if panel.Active {
			activePanels++
			if key != "C" {
				t.Fatalf("unexpected active panel %s", key)
			}
		}
	}
	if activeEntries != 1 || activePanels != 1 {
		t.Fatalf("expected one active pair, got %d entries %d panels", activeEntries, activePanels)
	}
	if active, ok := result.Active(); !ok || active != "C" {
		t.Fatalf("expected Active() to report C, got %q", active)
	}
}

func TestResolveActiveWithStalePreference(t *testing.T) {
	result := Build(nil, allowedABC(), BuildOptions{})
	active, ok := result.ResolveActive("g1", Preference{"g1": "Z"})
	if !ok || active != "A" || !result.Panels["A"].Active {
		t.Fatalf("expected A active, got %q %+v", active, result.Panels["A"])
	}
}
