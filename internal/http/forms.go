package http

import (
	"embed"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
)

//go:embed templates/*.html
var templateFS embed.FS

const paragraphFormTemplate = "templates/paragraph_form.html"

// formField is one input of a paragraph form, derived from the bundle schema.
type formField struct {
	Name     string
	Label    string
	Kind     string
	Required bool
}

func (f formField) widget() string {
	switch f.Kind {
	case "markdown", "html", "textarea":
		return "textarea"
	case "boolean":
		return "checkbox"
	default:
		if f.Name == paragraphs.BodyField {
			return "textarea"
		}
		return "input"
	}
}

func (f formField) inputType() string {
	switch f.Kind {
	case "number", "integer":
		return "number"
	case "link":
		return "url"
	default:
		return "text"
	}
}

// schemaFields lists the inputs of a bundle. Compact {"fields": [...]}
// definitions keep their order; JSON schema properties are sorted by name.
// Bundles without a schema get a single body field.
func schemaFields(schema map[string]any) []formField {
	if raw, ok := schema["fields"]; ok {
		if fields := compactFields(raw); len(fields) > 0 {
			return fields
		}
	}
	if properties, ok := schema["properties"].(map[string]any); ok && len(properties) > 0 {
		required := map[string]bool{}
		switch list := schema["required"].(type) {
		case []any:
			for _, name := range list {
				if s, ok := name.(string); ok {
					required[s] = true
				}
			}
		case []string:
			for _, name := range list {
				required[name] = true
			}
		}
		names := make([]string, 0, len(properties))
		for name := range properties {
			names = append(names, name)
		}
		slices.Sort(names)
		fields := make([]formField, 0, len(names))
		for _, name := range names {
			kind := ""
			if property, ok := properties[name].(map[string]any); ok {
				kind, _ = property["type"].(string)
				if format, ok := property["format"].(string); ok && format == "markdown" {
					kind = "markdown"
				}
			}
			fields = append(fields, formField{Name: name, Label: humanize(name), Kind: kind, Required: required[name]})
		}
		return fields
	}
	return []formField{{Name: paragraphs.BodyField, Label: humanize(paragraphs.BodyField), Kind: "markdown"}}
}

func compactFields(raw any) []formField {
	var entries []map[string]any
	switch typed := raw.(type) {
	case []any:
		for _, entry := range typed {
			switch field := entry.(type) {
			case map[string]any:
				entries = append(entries, field)
			case string:
				entries = append(entries, map[string]any{"name": field})
			}
		}
	case []map[string]any:
		entries = typed
	}
	fields := make([]formField, 0, len(entries))
	for _, entry := range entries {
		name, _ := entry["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		label, _ := entry["label"].(string)
		if strings.TrimSpace(label) == "" {
			label = humanize(name)
		}
		kind, _ := entry["type"].(string)
		required, _ := entry["required"].(bool)
		fields = append(fields, formField{
			Name:     name,
			Label:    label,
			Kind:     strings.ToLower(strings.TrimSpace(kind)),
			Required: required,
		})
	}
	return fields
}

func humanize(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// formContent reads the submitted values of fields. Empty optional values
// are left out; numbers that fail to parse are kept as text so schema
// validation reports them against the field.
func formContent(r *http.Request, fields []formField) map[string]any {
	content := map[string]any{}
	for _, field := range fields {
		if field.widget() == "checkbox" {
			content[field.Name] = r.PostForm.Has(field.Name)
			continue
		}
		value := strings.TrimSpace(r.PostForm.Get(field.Name))
		if value == "" && !field.Required {
			continue
		}
		switch field.Kind {
		case "integer":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				content[field.Name] = n
				continue
			}
		case "number":
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				content[field.Name] = n
				continue
			}
		}
		content[field.Name] = value
	}
	return content
}

// formView is the data a paragraph form renders with.
type formView struct {
	Title       string
	Description string
	Bundle      string
	Action      string
	Destination string
	Submit      string
	Modal       bool
	Fields      []formField
	Values      map[string]any
	Errors      map[string]string
}

func (v formView) data() map[string]any {
	fields := make([]map[string]any, 0, len(v.Fields))
	for _, field := range v.Fields {
		value := v.Values[field.Name]
		checked, _ := value.(bool)
		text := ""
		if value != nil {
			text = fmt.Sprint(value)
		}
		fields = append(fields, map[string]any{
			"name":       field.Name,
			"label":      field.Label,
			"widget":     field.widget(),
			"input_type": field.inputType(),
			"required":   field.Required,
			"value":      text,
			"checked":    checked,
			"error":      v.Errors[field.Name],
		})
	}
	return map[string]any{
		"title":          v.Title,
		"description":    v.Description,
		"paragraph_type": v.Bundle,
		"action":         v.Action,
		"destination":    v.Destination,
		"submit":         v.Submit,
		"modal":          v.Modal,
		"fields":         fields,
		"form_error":     v.Errors["_"],
	}
}
