package carousel

import (
	"context"
	"strings"
	"sync"
)

// File is an uploaded image referenced by Item.ImageID. URI is relative to
// the public files base, e.g. "carousel/summer.jpg".
type File struct {
	ID  string
	URI string
}

// FileStore resolves image ids to files.
type FileStore interface {
	Load(ctx context.Context, id string) (File, error)
}

// MemoryFileStore is a FileStore backed by a map.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string]File
}

// NewMemoryFileStore seeds a store with files.
func NewMemoryFileStore(files ...File) *MemoryFileStore {
	store := &MemoryFileStore{files: make(map[string]File, len(files))}
	for _, file := range files {
		store.Put(file)
	}
	return store
}

// Put adds or replaces a file.
func (s *MemoryFileStore) Put(file File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.ID] = file
}

func (s *MemoryFileStore) Load(_ context.Context, id string) (File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.files[strings.TrimSpace(id)]
	if !ok {
		return File{}, &NotFoundError{Resource: "file", Key: id}
	}
	return file, nil
}

// URLBuilder turns file URIs into public URLs, optionally through an image
// style derivative.
type URLBuilder struct {
	// Base is the public files prefix, e.g. "/files".
	Base string
	// Styles maps style machine names to labels.
	Styles map[string]string
}

// Original returns the URL of the unprocessed upload.
func (b URLBuilder) Original(file File) string {
	return joinURL(b.Base, file.URI)
}

// Styled returns the derivative URL for style. The original style and an
// empty style resolve to the original URL.
func (b URLBuilder) Styled(file File, style string) (string, error) {
	style = strings.TrimSpace(style)
	if style == "" || style == OriginalImageStyle {
		return b.Original(file), nil
	}
	if _, ok := b.Styles[style]; !ok {
		return "", ErrImageStyleUnknown
	}
	return joinURL(b.Base, "styles", style, file.URI), nil
}

func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}
		out += "/" + part
	}
	if out == "" {
		return "/"
	}
	return out
}
