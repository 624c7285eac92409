// Package library maintains the durable, newest-first collection of images
// the user has chosen to keep, persisted as a single JSON document under a
// namespaced key in an injected key-value store.
package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"studio/internal/domain"
	"studio/internal/domain/jsondoc"
	"studio/internal/kvstore"
)

// StorageKey is the fixed key the library document lives under.
const StorageKey = "studio:library:v1"

// Store owns the saved-image collection. Every mutation rewrites the whole
// document; there is no incremental update path. Mutations that fail to
// persist keep the in-memory change so the session stays usable, and report
// a wrapped domain.ErrPersistence.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	logger zerolog.Logger

	// newest first; ids unique across the slice
	images []domain.SavedImage
}

// Open loads the persisted library. An absent document yields an empty
// library. A corrupt document is logged and reset to empty: storage
// corruption must never prevent startup.
func Open(ctx context.Context, kv kvstore.Store, logger zerolog.Logger) (*Store, error) {
	s := &Store{kv: kv, logger: logger}
	images, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			logger.Warn().Err(err).Msg("library storage is corrupt, starting empty")
			return s, nil
		}
		return nil, err
	}
	s.images = images
	return s, nil
}

func (s *Store) load(ctx context.Context) ([]domain.SavedImage, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var images []domain.SavedImage
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptStore, err)
	}
	if images == nil && !isJSONArray([]byte(raw)) {
		return nil, fmt.Errorf("%w: top level is not an array", domain.ErrCorruptStore)
	}
	return images, nil
}

// Add commits a freshly generated image to the library. The prompt must be
// non-empty on this path. A missing or already-taken id is replaced with a
// fresh one rather than trusted. Returns the entry as stored.
func (s *Store) Add(ctx context.Context, image domain.SavedImage) (domain.SavedImage, error) {
	if image.Prompt == "" {
		return domain.SavedImage{}, domain.ErrInvalidPrompt
	}
	if image.ImageDataURL == "" {
		return domain.SavedImage{}, domain.ErrInvalidImage
	}
	if image.MIMEType == "" {
		image.MIMEType = domain.DefaultMIMEType
	}
	if image.Timestamp == 0 {
		image.Timestamp = time.Now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if image.ID == "" || s.containsIDLocked(image.ID) {
		image.ID = newID()
	}
	s.images = append([]domain.SavedImage{image}, s.images...)
	return image, s.persistLocked(ctx)
}

// Remove deletes the entry with the given id. Absent ids are a no-op, not an
// error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.images[:0]
	removed := false
	for _, img := range s.images {
		if img.ID == id {
			removed = true
			continue
		}
		kept = append(kept, img)
	}
	if !removed {
		return nil
	}
	s.images = kept
	return s.persistLocked(ctx)
}

// List returns a snapshot of the library, newest first.
func (s *Store) List() []domain.SavedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SavedImage, len(s.images))
	copy(out, s.images)
	return out
}

// ExportAll serializes the library as pretty-printed JSON, the exact format
// ImportMerge accepts back.
func (s *Store) ExportAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	images := s.images
	if images == nil {
		images = []domain.SavedImage{}
	}
	return json.MarshalIndent(images, "", "  ")
}

// ImportMerge parses raw as an exported library document and merges the
// valid, not-yet-present entries onto the front of the library, preserving
// their order from the file. A malformed document is a domain.ErrImportParse.
// Returns the number of entries actually added, which is legitimately zero
// when everything was a duplicate or invalid.
func (s *Store) ImportMerge(ctx context.Context, raw []byte) (int, error) {
	imported, err := jsondoc.ParseExport(raw)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.images))
	for _, img := range s.images {
		seen[img.ID] = struct{}{}
	}

	var added []domain.SavedImage
	for _, img := range imported {
		if _, dup := seen[img.ID]; dup {
			continue
		}
		seen[img.ID] = struct{}{}
		added = append(added, img)
	}
	if len(added) == 0 {
		return 0, nil
	}
	s.images = append(added, s.images...)
	return len(added), s.persistLocked(ctx)
}

// IsSaved reports whether an entry with exactly this payload already exists.
// Equality is byte equality of the full encoded payload, matching the
// behavior the save button relies on.
func (s *Store) IsSaved(imageDataURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, img := range s.images {
		if img.ImageDataURL == imageDataURL {
			return true
		}
	}
	return false
}

// SelectForReuse extracts a saved entry in the shape the generation provider
// accepts as a reference image.
func (s *Store) SelectForReuse(id string) (domain.ImageInput, error) {
	s.mu.Lock()
	var found *domain.SavedImage
	for i := range s.images {
		if s.images[i].ID == id {
			found = &s.images[i]
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		return domain.ImageInput{}, domain.ErrNotFound
	}
	input, err := domain.ParseDataURL(found.ImageDataURL)
	if err != nil {
		return domain.ImageInput{}, err
	}
	if found.MIMEType != "" {
		input.MIMEType = found.MIMEType
	}
	return input, nil
}

func (s *Store) containsIDLocked(id string) bool {
	for _, img := range s.images {
		if img.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) persistLocked(ctx context.Context) error {
	images := s.images
	if images == nil {
		images = []domain.SavedImage{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// newID combines a high-resolution timestamp with a random component so ids
// stay unique without coordinating with callers.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString())
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
