package tabs

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cms-bootstrap/internal/logging"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// DefaultPreferenceKey is the cookie holding the per-group active tabs.
const DefaultPreferenceKey = "paragraphs_bootstrap_tabs"

// DecodePreference parses a stored preference value. The value is a JSON
// object of group id to discriminator, optionally URI-component encoded.
// Absent or malformed input yields an empty preference; non-string values
// are skipped.
func DecodePreference(raw string) Preference {
	pref := Preference{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return pref
	}
	if !strings.HasPrefix(raw, "{") {
		unescaped, err := url.QueryUnescape(raw)
		if err != nil {
			return pref
		}
		raw = strings.TrimSpace(unescaped)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return pref
	}
	for group, value := range decoded {
		if discriminator, ok := value.(string); ok {
			pref[group] = discriminator
		}
	}
	return pref
}

// EncodePreference serialises pref as URI-component encoded JSON, the form
// the client script writes.
func EncodePreference(pref Preference) string {
	if pref == nil {
		pref = Preference{}
	}
	encoded, err := json.Marshal(map[string]string(pref))
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(url.QueryEscape(string(encoded)), "+", "%20")
}

// PreferenceBackend persists raw preference values by key.
type PreferenceBackend interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// PreferenceStore reads and updates the per-group preference mapping held in
// a backend under a single outer key.
type PreferenceStore struct {
	backend PreferenceBackend
	logger  interfaces.Logger
}

// PreferenceOption configures a PreferenceStore.
type PreferenceOption func(*PreferenceStore)

// WithPreferenceLogger sets the logger used to report backend write failures.
func WithPreferenceLogger(logger interfaces.Logger) PreferenceOption {
	return func(s *PreferenceStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPreferenceStore wraps backend.
func NewPreferenceStore(backend PreferenceBackend, opts ...PreferenceOption) *PreferenceStore {
	store := &PreferenceStore{backend: backend, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Get returns the mapping stored under storeKey, or an empty mapping.
func (s *PreferenceStore) Get(storeKey string) Preference {
	if s == nil || s.backend == nil {
		return Preference{}
	}
	raw, ok := s.backend.Load(storeKey)
	if !ok {
		return Preference{}
	}
	return DecodePreference(raw)
}

// Set overwrites the entry for groupID and writes the whole mapping back.
// Concurrent writers race; the last write wins.
func (s *PreferenceStore) Set(storeKey, groupID, discriminator string) {
	if s == nil || s.backend == nil {
		return
	}
	pref := s.Get(storeKey)
	pref[groupID] = discriminator
	if err := s.backend.Save(storeKey, EncodePreference(pref)); err != nil {
		s.logger.Warn("tabs.preference.save_failed", "key", storeKey, "group", groupID, "error", err)
	}
}

// MemoryPreferences is an in-process backend.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferences returns an empty in-memory backend.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: map[string]string{}}
}

func (m *MemoryPreferences) Load(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

func (m *MemoryPreferences) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Snapshot returns a copy of the stored values.
func (m *MemoryPreferences) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

// CookiePreferences reads preferences from a request's cookies and writes
// updates as Set-Cookie headers. Values written during the request are
// visible to later loads on the same backend.
type CookiePreferences struct {
	Request *http.Request
	Writer  http.ResponseWriter
	Path    string
	MaxAge  time.Duration

	mu      sync.Mutex
	pending map[string]string
}

func (c *CookiePreferences) Load(key string) (string, bool) {
	c.mu.Lock()
	value, ok := c.pending[key]
	c.mu.Unlock()
	if ok {
		return value, true
	}
	if c.Request == nil {
		return "", false
	}
	if cookie, err := c.Request.Cookie(key); err == nil {
		return cookie.Value, true
	}
	return rawCookie(c.Request.Header, key)
}

func (c *CookiePreferences) Save(key, value string) error {
	c.mu.Lock()
	if c.pending == nil {
		c.pending = map[string]string{}
	}
	c.pending[key] = value
	c.mu.Unlock()

	if c.Writer == nil {
		return nil
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	cookie := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     path,
		SameSite: http.SameSiteLaxMode,
	}
	if c.MaxAge > 0 {
		cookie.MaxAge = int(c.MaxAge / time.Second)
	}
	http.SetCookie(c.Writer, cookie)
	return nil
}

// rawCookie finds a cookie the standard parser rejects, such as an
// unencoded JSON value written by an older client.
func rawCookie(header http.Header, key string) (string, bool) {
	prefix := key + "="
	for _, line := range header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			part = strings.TrimSpace(part)
			if value, ok := strings.CutPrefix(part, prefix); ok {
				return value, true
			}
		}
	}
	return "", false
}
