package tabs

// Resolve picks the active discriminator for groupID: the stored preference
// when it names a present entry, otherwise the first entry. It reports false
// only when navigation is empty.
func Resolve(groupID string, navigation []NavigationEntry, pref Preference) (string, bool) {
	if len(navigation) == 0 {
		return "", false
	}
	if preferred, ok := pref[groupID]; ok && preferred != "" {
		for _, entry := range navigation {
			if entry.Discriminator == preferred {
				return preferred, true
			}
		}
	}
	return navigation[0].Discriminator, true
}

// Activate marks the entry and panel for discriminator active and clears
// every other pair. An unknown discriminator leaves nothing active.
func (r *Result) Activate(discriminator string) {
	for idx := range r.Navigation {
		r.Navigation[idx].Active = r.Navigation[idx].Discriminator == discriminator
	}
	for key, panel := range r.Panels {
		panel.Active = key == discriminator
		r.Panels[key] = panel
	}
}

// ResolveActive resolves the active tab for groupID and applies it.
func (r *Result) ResolveActive(groupID string, pref Preference) (string, bool) {
	active, ok := Resolve(groupID, r.Navigation, pref)
	if ok {
		r.Activate(active)
	}
	return active, ok
}
