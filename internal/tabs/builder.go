package tabs

import "strings"

// BuildOptions carries the per-render policy. Nil predicates deny.
type BuildOptions struct {
	HideEmpty      bool
	HideOperations bool
	// Permission decides whether an item gets an operations block.
	Permission func(Item) bool
	// AddPermission decides whether the viewer may add items of a type.
	AddPermission func(AllowedType) bool
}

// Build groups items by discriminator and projects the allowed types into
// navigation entries and panels. Items of unknown types are counted in
// Result.Dropped and otherwise ignored. Nothing is marked active; see
// Resolve and Result.Activate.
func Build(items []Item, allowed []AllowedType, opts BuildOptions) Result {
	partitions := make(map[string][]Item, len(allowed))
	for _, item := range items {
		key := strings.TrimSpace(item.Discriminator)
		partitions[key] = append(partitions[key], item)
	}

	result := Result{
		Panels:     make(map[string]Panel, len(allowed)),
		SingleType: len(allowed) == 1,
	}

	known := make(map[string]struct{}, len(allowed))
	for _, allowedType := range allowed {
		discriminator := strings.TrimSpace(allowedType.Discriminator)
		if discriminator == "" {
			continue
		}
		if _, seen := known[discriminator]; seen {
			continue
		}
		known[discriminator] = struct{}{}

		group := partitions[discriminator]
		if len(group) == 0 && opts.HideEmpty {
			continue
		}

		result.Navigation = append(result.Navigation, NavigationEntry{
			Discriminator:    discriminator,
			Label:            allowedType.Label,
			Icon:             allowedType.Icon,
			Description:      allowedType.Description,
			HasAddPermission: opts.AddPermission != nil && opts.AddPermission(allowedType),
		})

		panel := Panel{Discriminator: discriminator, Empty: len(group) == 0}
		if len(group) > 0 {
			panel.Items = make([]PanelItem, 0, len(group))
		}
		for _, item := range group {
			panel.Items = append(panel.Items, PanelItem{
				Item:           item,
				ShowOperations: !opts.HideOperations && opts.Permission != nil && opts.Permission(item),
			})
		}
		result.Panels[discriminator] = panel
	}

	for discriminator, group := range partitions {
		if _, ok := known[discriminator]; !ok {
			result.Dropped += len(group)
		}
	}
	return result
}
