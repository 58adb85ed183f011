package tabs

import (
	"strings"

	"golang.org/x/net/html"
)

// Visibility records which entries and items a filter pass leaves visible.
type Visibility struct {
	Entries map[string]bool
	Items   map[string][]bool
}

// Visible reports whether the navigation entry and panel for discriminator
// are shown.
func (v Visibility) Visible(discriminator string) bool {
	return v.Entries[discriminator]
}

// Filter evaluates query against the text of every item: a case-insensitive
// substring match. A panel and its entry stay visible when any of its items
// match. An empty query shows everything.
func Filter(query string, result Result) Visibility {
	vis := Visibility{
		Entries: make(map[string]bool, len(result.Navigation)),
		Items:   make(map[string][]bool, len(result.Navigation)),
	}
	needle := strings.ToLower(query)

	for _, entry := range result.Navigation {
		panel := result.Panels[entry.Discriminator]
		items := make([]bool, len(panel.Items))
		visible := query == ""
		for idx, item := range panel.Items {
			items[idx] = query == "" || strings.Contains(strings.ToLower(ItemText(item)), needle)
			visible = visible || items[idx]
		}
		vis.Entries[entry.Discriminator] = visible
		vis.Items[entry.Discriminator] = items
	}
	return vis
}

// ItemText is the visible text of an item: header, payload and footer with
// markup removed.
func ItemText(item PanelItem) string {
	parts := make([]string, 0, 3)
	for _, fragment := range []string{item.Header, item.Payload, item.Footer} {
		if text := TextContent(fragment); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// TextContent strips markup from an HTML fragment and collapses whitespace.
func TextContent(fragment string) string {
	if fragment == "" {
		return ""
	}
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); isRawTextTag(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); isRawTextTag(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isRawTextTag(name string) bool {
	return name == "script" || name == "style"
}
