package paragraphs

import (
	"strings"
	"sync"

	"github.com/goliatone/go-cms-bootstrap/internal/identity"
	"github.com/goliatone/go-cms-bootstrap/internal/tabs"
	"github.com/goliatone/go-cms-bootstrap/internal/validation"
)

// TypeRegistry holds the paragraph bundles items can be created from and the
// bundles each field accepts.
type TypeRegistry struct {
	mu        sync.RWMutex
	types     map[string]ParagraphType
	order     []string
	fields    map[string][]string
	validator *validation.Validator
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:     map[string]ParagraphType{},
		fields:    map[string][]string{},
		validator: validation.NewValidator(),
	}
}

// Register adds or replaces a bundle. The schema is compiled up front so a
// broken definition fails here rather than on the first submission.
func (r *TypeRegistry) Register(def ParagraphType) error {
	bundle := normalizeBundle(def.Bundle)
	if bundle == "" {
		return ErrBundleRequired
	}
	if err := r.validator.Register(bundle, def.Schema); err != nil {
		return err
	}
	def.Bundle = bundle
	def.ID = identity.ParagraphTypeUUID(bundle)
	if strings.TrimSpace(def.Label) == "" {
		def.Label = bundle
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[bundle]; !exists {
		r.order = append(r.order, bundle)
	}
	r.types[bundle] = def
	return nil
}

// Get returns the bundle definition.
func (r *TypeRegistry) Get(bundle string) (ParagraphType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.types[normalizeBundle(bundle)]
	return def, ok
}

// List returns every bundle in registration order.
func (r *TypeRegistry) List() []ParagraphType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ParagraphType, 0, len(r.order))
	for _, bundle := range r.order {
		out = append(out, r.types[bundle])
	}
	return out
}

// AllowOnField restricts field to bundles, in the order given. Fields
// without a restriction accept every registered bundle.
func (r *TypeRegistry) AllowOnField(field string, bundles ...string) {
	normalized := make([]string, 0, len(bundles))
	for _, bundle := range bundles {
		if b := normalizeBundle(bundle); b != "" {
			normalized = append(normalized, b)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[strings.TrimSpace(field)] = normalized
}

// TypesFor returns the registered bundles field accepts.
func (r *TypeRegistry) TypesFor(field string) []ParagraphType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bundles, restricted := r.fields[strings.TrimSpace(field)]
	if !restricted {
		bundles = r.order
	}
	out := make([]ParagraphType, 0, len(bundles))
	for _, bundle := range bundles {
		if def, ok := r.types[bundle]; ok {
			out = append(out, def)
		}
	}
	return out
}

// Allows reports whether field accepts bundle.
func (r *TypeRegistry) Allows(field, bundle string) bool {
	bundle = normalizeBundle(bundle)
	for _, def := range r.TypesFor(field) {
		if def.Bundle == bundle {
			return true
		}
	}
	return false
}

// Allowed projects the bundles of field onto the tab builder's allowed types.
func (r *TypeRegistry) Allowed(field string) []tabs.AllowedType {
	defs := r.TypesFor(field)
	out := make([]tabs.AllowedType, 0, len(defs))
	for _, def := range defs {
		out = append(out, tabs.AllowedType{
			Discriminator: def.Bundle,
			Label:         def.Label,
			Icon:          def.Icon,
			Description:   def.Description,
		})
	}
	return out
}

// Validate checks content against the bundle schema.
func (r *TypeRegistry) Validate(bundle string, content map[string]any) error {
	return r.validator.Validate(normalizeBundle(bundle), content)
}

func normalizeBundle(bundle string) string {
	return strings.ToLower(strings.TrimSpace(bundle))
}
