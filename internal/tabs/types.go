package tabs

// Item is one sub-entry routed into a tab by its discriminator. Items are
// supplied per render pass and never mutated by this package.
type Item struct {
	Discriminator string
	OrderIndex    int
	// Payload is the already rendered HTML fragment for the item.
	Payload    string
	Identity   string
	RevisionID string
}

// AllowedType is a configured discriminator eligible for a tab. The order of
// the configured list fixes button order and the fallback active tab.
type AllowedType struct {
	Discriminator string
	Label         string
	Icon          string
	Description   string
}

// NavigationEntry is the tab button model for one discriminator.
type NavigationEntry struct {
	Discriminator    string
	Label            string
	Icon             string
	Description      string
	Active           bool
	HasAddPermission bool
	// AddLink is set by the formatter once link URLs are known.
	AddLink    *Link
	Attributes Attributes
}

// Panel holds the items of one discriminator in original order.
type Panel struct {
	Discriminator string
	Items         []PanelItem
	Active        bool
	Empty         bool
	// AddLink is the in-panel add button shown to permitted viewers.
	AddLink    *Link
	Attributes Attributes
}

// PanelItem decorates an Item for display.
type PanelItem struct {
	Item
	ShowOperations bool
	Header         string
	Footer         string
	Operations     []Operation
	Attributes     Attributes
}

// Preference maps a group id to the last discriminator the viewer selected.
type Preference map[string]string

// Result is the outcome of a build pass. Panels are keyed by discriminator;
// display order follows Navigation.
type Result struct {
	Navigation []NavigationEntry
	Panels     map[string]Panel
	// SingleType is set when exactly one type is allowed; the add affordance
	// then renders as one prominent button instead of a dropdown.
	SingleType bool
	// Dropped counts items whose discriminator is not an allowed type.
	Dropped int
}

// OrderedPanels returns the panels in navigation order.
func (r Result) OrderedPanels() []Panel {
	out := make([]Panel, 0, len(r.Navigation))
	for _, entry := range r.Navigation {
		if panel, ok := r.Panels[entry.Discriminator]; ok {
			out = append(out, panel)
		}
	}
	return out
}

// Active returns the active discriminator, if any.
func (r Result) Active() (string, bool) {
	for _, entry := range r.Navigation {
		if entry.Active {
			return entry.Discriminator, true
		}
	}
	return "", false
}

// Link is a rendered anchor: URL, label and attribute bag.
type Link struct {
	URL   string
	Label string
	// Icon is an icon font class; Image an icon image URL.
	Icon       string
	Image      string
	Attributes Attributes
}

// Operation is one per-item action link (view, edit, duplicate, delete).
type Operation struct {
	Name string
	Link
}
