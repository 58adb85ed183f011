package carousel

import (
	"maps"
	"slices"
)

// Option is a value/label pair for settings forms.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ImageTypeOptions lists the selectable image classes.
func ImageTypeOptions() []Option {
	return []Option{
		{Value: string(ImageTypeDefault), Label: "Default"},
		{Value: string(ImageTypeFluid), Label: "Fluid"},
		{Value: string(ImageTypeCircle), Label: "Circle"},
	}
}

// ImageStyleOptions lists "original" followed by styles sorted by name.
func ImageStyleOptions(styles map[string]string) []Option {
	options := []Option{{Value: OriginalImageStyle, Label: "Original image"}}
	for _, name := range slices.Sorted(maps.Keys(styles)) {
		if name == OriginalImageStyle {
			continue
		}
		label := styles[name]
		if label == "" {
			label = name
		}
		options = append(options, Option{Value: name, Label: label})
	}
	return options
}

// Statuses maps status codes to labels.
func Statuses() map[Status]string {
	return map[Status]string{
		StatusInactive: "Inactive",
		StatusActive:   "Active",
	}
}
