package tabs

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// HTMLID turns a machine name into a valid, lower-case HTML id.
func HTMLID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	normalized, err := slug.Normalize(strings.ReplaceAll(value, "_", "-"))
	if err != nil || normalized == "" {
		return strings.ToLower(strings.ReplaceAll(value, " ", "-"))
	}
	return normalized
}
