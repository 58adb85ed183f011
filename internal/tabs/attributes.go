package tabs

import (
	"html"
	"maps"
	"slices"
	"strings"
)

// Attributes is an HTML attribute bag. The "class" key is kept as a
// de-duplicated, order preserving list.
type Attributes struct {
	classes []string
	values  map[string]string
}

// NewAttributes seeds a bag from plain key/value pairs.
func NewAttributes(values map[string]string) Attributes {
	var attrs Attributes
	for _, key := range slices.Sorted(maps.Keys(values)) {
		attrs.Set(key, values[key])
	}
	return attrs
}

// Set stores value under key. Setting "class" replaces the class list.
func (a *Attributes) Set(key, value string) *Attributes {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return a
	}
	if key == "class" {
		a.classes = nil
		return a.AddClass(strings.Fields(value)...)
	}
	if a.values == nil {
		a.values = map[string]string{}
	}
	a.values[key] = value
	return a
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (string, bool) {
	if key == "class" {
		return strings.Join(a.classes, " "), len(a.classes) > 0
	}
	value, ok := a.values[key]
	return value, ok
}

// AddClass appends classes, skipping blanks and duplicates. Each argument
// may carry several space separated class names.
func (a *Attributes) AddClass(classes ...string) *Attributes {
	for _, group := range classes {
		for _, class := range strings.Fields(group) {
			if !slices.Contains(a.classes, class) {
				a.classes = append(a.classes, class)
			}
		}
	}
	return a
}

// HasClass reports whether class is present.
func (a Attributes) HasClass(class string) bool {
	return slices.Contains(a.classes, class)
}

// Classes returns a copy of the class list.
func (a Attributes) Classes() []string {
	return slices.Clone(a.classes)
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	return Attributes{classes: slices.Clone(a.classes), values: maps.Clone(a.values)}
}

// String renders the bag as escaped HTML attributes with a leading space,
// class first and the rest sorted by name.
func (a Attributes) String() string {
	var b strings.Builder
	if len(a.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(strings.Join(a.classes, " ")))
		b.WriteByte('"')
	}
	for _, key := range slices.Sorted(maps.Keys(a.values)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.values[key]))
		b.WriteByte('"')
	}
	return b.String()
}
