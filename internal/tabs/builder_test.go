package tabs

import (
	"reflect"
	"testing"
)

func allowedABC() []AllowedType {
	return []AllowedType{
		{Discriminator: "A", Label: "Alpha"},
		{Discriminator: "B", Label: "Beta"},
		{Discriminator: "C", Label: "Gamma"},
	}
}

func discriminators(entries []NavigationEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Discriminator)
	}
	return out
}

func TestBuildKeepsEmptyPanelsWhenNotHidden(t *testing.T) {
	result := Build([]Item{{Discriminator: "B", OrderIndex: 0}}, allowedABC(), BuildOptions{})

	if got := discriminators(result.Navigation); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected navigation [A B C], got %v", got)
	}
	if !result.Panels["A"].Empty || !result.Panels["C"].Empty {
		t.Fatalf("expected A and C empty, got %+v", result.Panels)
	}
	if b := result.Panels["B"]; b.Empty || len(b.Items) != 1 {
		t.Fatalf("expected B with one item, got %+v", b)
	}

	active, ok := result.ResolveActive("g1", Preference{})
	if !ok || active != "A" {
		t.Fatalf("expected fallback active A, got %q", active)
	}
}

func TestBuildHidesEmptyPanels(t *testing.T) {
	result := Build([]Item{{Discriminator: "B", OrderIndex: 0}}, allowedABC(), BuildOptions{HideEmpty: true})

	if got := discriminators(result.Navigation); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("expected navigation [B], got %v", got)
	}
	if len(result.Panels) != 1 {
		t.Fatalf("expected only panel B, got %v", result.Panels)
	}
	if active, _ := result.ResolveActive("g1", nil); active != "B" {
		t.Fatalf("expected active B, got %q", active)
	}
}

func TestBuildNavigationFollowsAllowedOrder(t *testing.T) {
	items := []Item{
		{Discriminator: "C", OrderIndex: 0},
		{Discriminator: "A", OrderIndex: 1},
		{Discriminator: "C", OrderIndex: 2},
		{Discriminator: "B", OrderIndex: 3},
	}
	for _, hide := range []bool{false, true} {
		result := Build(items, allowedABC(), BuildOptions{HideEmpty: hide})
		if got := discriminators(result.Navigation); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
			t.Fatalf("hideEmpty=%v: expected [A B C], got %v", hide, got)
		}
		ordered := result.OrderedPanels()
		for idx, panel := range ordered {
			if panel.Discriminator != result.Navigation[idx].Discriminator {
				t.Fatalf("panel order %v does not match navigation", ordered)
			}
		}
	}
}

func TestBuildPreservesItemOrderWithinPanel(t *testing.T) {
	items := []Item{
		{Discriminator: "A", OrderIndex: 5, Identity: "first"},
		{Discriminator: "B", OrderIndex: 1, Identity: "other"},
		{Discriminator: "A", OrderIndex: 2, Identity: "second"},
	}
	panel := Build(items, allowedABC(), BuildOptions{}).Panels["A"]
	if len(panel.Items) != 2 || panel.Items[0].Identity != "first" || panel.Items[1].Identity != "second" {
		t.Fatalf("expected input order preserved, got %+v", panel.Items)
	}
}

func TestBuildPanelsMatchNavigation(t *testing.T) {
	items := []Item{{Discriminator: "A"}, {Discriminator: "C"}}
	for _, hide := range []bool{false, true} {
		result := Build(items, allowedABC(), BuildOptions{HideEmpty: hide})
		if len(result.Panels) != len(result.Navigation) {
			t.Fatalf("hideEmpty=%v: %d panels for %d entries", hide, len(result.Panels), len(result.Navigation))
		}
		for _, entry := range result.Navigation {
			panel, ok := result.Panels[entry.Discriminator]
			if !ok {
				t.Fatalf("missing panel for %s", entry.Discriminator)
			}
			if panel.Empty != (len(panel.Items) == 0) {
				t.Fatalf("panel %s empty flag inconsistent", entry.Discriminator)
			}
		}
	}
}

func TestBuildDropsUnknownDiscriminators(t *testing.T) {
	items := []Item{{Discriminator: "A"}, {Discriminator: "Z"}, {Discriminator: "Z"}}
	result := Build(items, allowedABC(), BuildOptions{HideEmpty: true})

	if result.Dropped != 2 {
		t.Fatalf("expected 2 dropped items, got %d", result.Dropped)
	}
	if _, ok := result.Panels["Z"]; ok {
		t.Fatal("expected unknown discriminator to have no panel")
	}
}

func TestBuildMatchesDiscriminatorsIgnoringSurroundingSpace(t *testing.T) {
	items := []Item{{Discriminator: "A ", Identity: "1"}, {Discriminator: "\tB", Identity: "2"}, {Discriminator: "  "}}
	allowed := []AllowedType{{Discriminator: " A"}, {Discriminator: "B"}}

	result := Build(items, allowed, BuildOptions{HideEmpty: true})
	if got := discriminators(result.Navigation); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("expected [A B], got %v", got)
	}
	if panel := result.Panels["A"]; len(panel.Items) != 1 || panel.Items[0].Identity != "1" {
		t.Fatalf("expected padded item grouped under A, got %+v", panel)
	}
	if result.Dropped != 1 {
		t.Fatalf("expected only the blank item dropped, got %d", result.Dropped)
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	result := Build(nil, allowedABC(), BuildOptions{})
	if len(result.Navigation) != 3 || len(result.Panels) != 3 {
		t.Fatalf("expected full navigation of empty panels, got %+v", result)
	}

	result = Build(nil, allowedABC(), BuildOptions{HideEmpty: true})
	if len(result.Navigation) != 0 || len(result.Panels) != 0 {
		t.Fatalf("expected nothing, got %+v", result)
	}
	if _, ok := result.ResolveActive("g1", Preference{"g1": "A"}); ok {
		t.Fatal("expected no active tab for empty navigation")
	}

	result = Build([]Item{{Discriminator: "A"}}, nil, BuildOptions{})
	if len(result.Navigation) != 0 || result.Dropped != 1 {
		t.Fatalf("expected degenerate no-tabs result, got %+v", result)
	}
}

func TestBuildSkipsDuplicateAndBlankAllowedTypes(t *testing.T) {
	allowed := []AllowedType{{Discriminator: "A"}, {Discriminator: " "}, {Discriminator: "A", Label: "dup"}, {Discriminator: "B"}}
	result := Build(nil, allowed, BuildOptions{})
	if got := discriminators(result.Navigation); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("expected [A B], got %v", got)
	}
}

func TestBuildPermissionPredicates(t *testing.T) {
	items := []Item{{Discriminator: "A", Identity: "1"}, {Discriminator: "A", Identity: "2"}}
	opts := BuildOptions{
		Permission:    func(item Item) bool { return item.Identity == "2" },
		AddPermission: func(t AllowedType) bool { return t.Discriminator == "B" },
	}
	result := Build(items, allowedABC(), opts)

	panel := result.Panels["A"]
	if panel.Items[0].ShowOperations || !panel.Items[1].ShowOperations {
		t.Fatalf("expected operations only on item 2, got %+v", panel.Items)
	}
	if result.Navigation[0].HasAddPermission || !result.Navigation[1].HasAddPermission {
		t.Fatalf("expected add permission only on B, got %+v", result.Navigation)
	}

	opts.HideOperations = true
	for _, item := range Build(items, allowedABC(), opts).Panels["A"].Items {
		if item.ShowOperations {
			t.Fatal("expected operations hidden globally")
		}
	}

	for _, item := range Build(items, allowedABC(), BuildOptions{}).Panels["A"].Items {
		if item.ShowOperations {
			t.Fatal("expected nil predicate to deny operations")
		}
	}
}

func TestBuildSingleType(t *testing.T) {
	if !Build(nil, []AllowedType{{Discriminator: "A"}}, BuildOptions{}).SingleType {
		t.Fatal("expected single type flag")
	}
	if Build(nil, allowedABC(), BuildOptions{}).SingleType {
		t.Fatal("expected single type flag off for three types")
	}
}
