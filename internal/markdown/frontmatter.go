package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits source into its frontmatter fields and the
// Markdown body. Sources without frontmatter return empty metadata and the
// whole input as body. Nested YAML maps are returned as map[string]any.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	out := make(map[string]any, len(meta))
	for key, value := range meta {
		out[key] = normalizeValue(value)
	}
	return out, body, nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
