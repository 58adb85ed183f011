package tabs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

func TestDecodePreference(t *testing.T) {
	cases := map[string]Preference{
		``:                                       {},
		`not json`:                               {},
		`{"g1":`:                                 {},
		`[]`:                                     {},
		`%ZZ`:                                    {},
		`{"g1":"A","g2":"B"}`:                    {"g1": "A", "g2": "B"},
		`%7B%22g1%22%3A%22A%22%7D`:               {"g1": "A"},
		`{"g1":"A","g2":3,"g3":null,"g4":["x"]}`: {"g1": "A"},
	}
	for raw, want := range cases {
		if got := DecodePreference(raw); !reflect.DeepEqual(got, want) {
			t.Fatalf("DecodePreference(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestEncodePreferenceRoundTrip(t *testing.T) {
	pref := Preference{"field_tabs": "text block", "other": "image"}
	encoded := EncodePreference(pref)
	if strings.ContainsAny(encoded, `"{}, ;+`) {
		t.Fatalf("expected cookie-safe encoding, got %q", encoded)
	}
	if got := DecodePreference(encoded); !reflect.DeepEqual(got, pref) {
		t.Fatalf("expected round trip, got %v", got)
	}
	if EncodePreference(nil) != "%7B%7D" {
		t.Fatalf("expected empty object, got %q", EncodePreference(nil))
	}
}

func TestPreferenceStoreSetPreservesOtherGroups(t *testing.T) {
	backend := NewMemoryPreferences()
	store := NewPreferenceStore(backend)

	store.Set(DefaultPreferenceKey, "g2", "B")
	store.Set(DefaultPreferenceKey, "g1", "typeA")
	store.Set(DefaultPreferenceKey, "g1", "typeC")

	got := store.Get(DefaultPreferenceKey)
	want := Preference{"g1": "typeC", "g2": "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPreferenceStoreRecoversFromCorruptValue(t *testing.T) {
	backend := NewMemoryPreferences()
	_ = backend.Save(DefaultPreferenceKey, "{broken")
	store := NewPreferenceStore(backend)

	if got := store.Get(DefaultPreferenceKey); len(got) != 0 {
		t.Fatalf("expected empty preference, got %v", got)
	}
	store.Set(DefaultPreferenceKey, "g1", "A")
	if got := store.Get(DefaultPreferenceKey); got["g1"] != "A" {
		t.Fatalf("expected g1=A after overwrite, got %v", got)
	}
}

func TestPreferenceStoreNilBackend(t *testing.T) {
	store := NewPreferenceStore(nil)
	store.Set(DefaultPreferenceKey, "g1", "A")
	if got := store.Get(DefaultPreferenceKey); len(got) != 0 {
		t.Fatalf("expected empty preference, got %v", got)
	}
}

type failingBackend struct{}

func (failingBackend) Load(string) (string, bool) { return "", false }
func (failingBackend) Save(string, string) error  { return errors.New("disk full") }

type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Trace(string, ...any)                          {}
func (w *warnRecorder) Debug(string, ...any)                          {}
func (w *warnRecorder) Info(string, ...any)                           {}
func (w *warnRecorder) Warn(msg string, _ ...any)                     { w.warnings = append(w.warnings, msg) }
func (w *warnRecorder) Error(msg string, _ ...any)                    { w.warnings = append(w.warnings, msg) }
func (w *warnRecorder) Fatal(string, ...any)                          {}
func (w *warnRecorder) WithFields(map[string]any) interfaces.Logger   { return w }
func (w *warnRecorder) WithContext(context.Context) interfaces.Logger { return w }

func TestPreferenceStoreLogsSaveFailure(t *testing.T) {
	logger := &warnRecorder{}
	store := NewPreferenceStore(failingBackend{}, WithPreferenceLogger(logger))
	store.Set(DefaultPreferenceKey, "g1", "A")
	if len(logger.warnings) != 1 || logger.warnings[0] != "tabs.preference.save_failed" {
		t.Fatalf("expected save failure warning, got %v", logger.warnings)
	}
}

func TestCookiePreferencesRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultPreferenceKey, Value: EncodePreference(Preference{"g2": "B"})})
	rec := httptest.NewRecorder()

	backend := &CookiePreferences{Request: req, Writer: rec, MaxAge: time.Hour}
	store := NewPreferenceStore(backend)
	store.Set(DefaultPreferenceKey, "g1", "A")

	if got := store.Get(DefaultPreferenceKey); !reflect.DeepEqual(got, Preference{"g1": "A", "g2": "B"}) {
		t.Fatalf("expected merged preference, got %v", got)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultPreferenceKey {
		t.Fatalf("expected one preference cookie, got %v", cookies)
	}
	if cookies[0].Path != "/" || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes %+v", cookies[0])
	}
	if got := DecodePreference(cookies[0].Value); !reflect.DeepEqual(got, Preference{"g1": "A", "g2": "B"}) {
		t.Fatalf("expected encoded cookie to decode, got %v", got)
	}
}

func TestCookiePreferencesReadsRawJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", `other=1; paragraphs_bootstrap_tabs={"field_tabs":"image"}`)

	store := NewPreferenceStore(&CookiePreferences{Request: req})
	if got := store.Get(DefaultPreferenceKey); got["field_tabs"] != "image" {
		t.Fatalf("expected raw JSON cookie to decode, got %v", got)
	}
}

func TestCookiePreferencesMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	store := NewPreferenceStore(&CookiePreferences{Request: req})
	if got := store.Get(DefaultPreferenceKey); len(got) != 0 {
		t.Fatalf("expected empty preference, got %v", got)
	}
}
