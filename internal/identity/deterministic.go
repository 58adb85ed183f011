package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-cms-bootstrap:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys must carry their own domain prefix so different entity kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ParagraphTypeUUID identifies a registered paragraph bundle.
func ParagraphTypeUUID(bundle string) uuid.UUID {
	return UUID(namespace + "paragraph_type:" + strings.ToLower(strings.TrimSpace(bundle)))
}

// FixtureUUID identifies an entity seeded from a fixture file so reseeding
// upserts instead of duplicating.
func FixtureUUID(kind, name string) uuid.UUID {
	return UUID(namespace + "fixture:" + strings.ToLower(strings.TrimSpace(kind)) + ":" + strings.TrimSpace(name))
}

// CarouselSettingsUUID identifies the single stored carousel settings row.
func CarouselSettingsUUID() uuid.UUID {
	return UUID(namespace + "carousel_settings")
}
