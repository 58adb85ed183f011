package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// PayloadError reports every issue found while validating a payload.
type PayloadError struct {
	Issues []Issue
	Cause  error
}

func (e *PayloadError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

// FieldErrors flattens issues into a field name to message map suitable for
// re-rendering a form. Issues at the document root are keyed by "_".
func FieldErrors(err error) map[string]string {
	issues := Issues(err)
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		field := strings.Trim(strings.TrimPrefix(issue.Location, "#"), "/")
		if idx := strings.Index(field, "/"); idx >= 0 {
			field = field[:idx]
		}
		if field == "" {
			field = "_"
		}
		if _, exists := out[field]; !exists {
			out[field] = issue.Message
		}
	}
	return out
}

// Validator compiles schemas once and validates payloads against them.
// Schemas are keyed by the caller, typically a paragraph bundle.
type Validator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator returns an empty validator.
func NewValidator() *Validator {
	return &Validator{compiled: map[string]*jsonschema.Schema{}}
}

// Register compiles schema under key, replacing any previous entry. A nil
// schema removes the key so payloads are accepted as-is.
func (v *Validator) Register(key string, schema map[string]any) error {
	normalized := NormalizeSchema(schema)
	v.mu.Lock()
	defer v.mu.Unlock()
	if normalized == nil {
		delete(v.compiled, key)
		return nil
	}
	compiled, err := compileSchema(normalized)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, key, err)
	}
	v.compiled[key] = compiled
	return nil
}

// Validate checks payload against the schema registered under key.
// Unknown keys validate successfully.
func (v *Validator) Validate(key string, payload map[string]any) error {
	v.mu.RLock()
	compiled := v.compiled[key]
	v.mu.RUnlock()
	if compiled == nil {
		return nil
	}
	return validateCompiled(compiled, payload)
}

// ValidateSchema ensures the schema can be compiled.
func ValidateSchema(schema map[string]any) error {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil
	}
	if _, err := compileSchema(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates payload against the provided schema.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	return validateWithSchema(NormalizeSchema(schema), payload)
}

// ValidatePartialPayload validates payload without enforcing required fields.
func ValidatePartialPayload(schema map[string]any, payload map[string]any) error {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil
	}
	normalized = cloneMap(normalized)
	delete(normalized, "required")
	return validateWithSchema(normalized, payload)
}

func validateWithSchema(schema map[string]any, payload map[string]any) error {
	if schema == nil {
		return nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return validateCompiled(compiled, payload)
}

func validateCompiled(compiled *jsonschema.Schema, payload map[string]any) error {
	document, err := jsonDocument(payload)
	if err != nil {
		return &PayloadError{Issues: []Issue{{Message: err.Error()}}, Cause: err}
	}
	if err := compiled.Validate(document); err != nil {
		return &PayloadError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// jsonDocument round-trips payload through encoding/json so Go numeric and
// struct values reach the validator in their decoded JSON shape.
func jsonDocument(payload map[string]any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, err
	}
	return document, nil
}

// NormalizeSchema converts a schema definition into a JSON schema. Besides
// plain JSON schemas it accepts the compact {"fields": [...]} form used by
// paragraph type definitions.
func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	if isJSONSchema(schema) {
		return cloneMap(schema)
	}
	fields, ok := schema["fields"]
	if !ok {
		return nil
	}
	properties, required := normalizeFields(fields)
	if len(properties) == 0 {
		return nil
	}
	normalized := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if override, ok := schema["additionalProperties"].(bool); ok {
		normalized["additionalProperties"] = override
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

func isJSONSchema(schema map[string]any) bool {
	for _, key := range []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"} {
		if _, ok := schema[key]; ok {
			return true
		}
	}
	return false
}

func normalizeFields(fields any) (map[string]any, []any) {
	properties := make(map[string]any)
	required := make([]any, 0)

	switch typed := fields.(type) {
	case []any:
		for _, entry := range typed {
			switch field := entry.(type) {
			case map[string]any:
				addField(properties, &required, field)
			case string:
				addField(properties, &required, map[string]any{"name": field})
			}
		}
	case []map[string]any:
		for _, field := range typed {
			addField(properties, &required, field)
		}
	}
	return properties, required
}

func addField(properties map[string]any, required *[]any, field map[string]any) {
	name, _ := field["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	property := map[string]any{}
	if schema, ok := field["schema"].(map[string]any); ok {
		property = cloneMap(schema)
	} else if fieldType, ok := field["type"].(string); ok {
		if jsonType := normalizeJSONType(fieldType); jsonType != "" {
			property["type"] = jsonType
		}
	}
	if maxLength, ok := field["max_length"]; ok {
		property["maxLength"] = maxLength
	}
	properties[name] = property
	if flag, ok := field["required"].(bool); ok && flag {
		*required = append(*required, name)
	}
}

func normalizeJSONType(value string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(value)); normalized {
	case "string", "number", "integer", "boolean", "object", "array", "null":
		return normalized
	case "text", "markdown", "html", "link", "image":
		return "string"
	default:
		return ""
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
