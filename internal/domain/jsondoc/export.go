// Package jsondoc defines the portable JSON document the library exports and
// accepts back on import.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"studio/internal/domain"
)

// Entry mirrors one element of an exported library file. Pointer fields let
// validation distinguish a missing field from a zero value.
type Entry struct {
	ID           *string  `json:"id"`
	ImageDataURL *string  `json:"imageDataUrl"`
	MIMEType     *string  `json:"mimeType"`
	Prompt       *string  `json:"prompt"`
	Timestamp    *float64 `json:"timestamp"`
}

// Validate ensures the entry carries everything a library record needs.
func (e Entry) Validate() error {
	if e.ID == nil || *e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if e.ImageDataURL == nil {
		return fmt.Errorf("imageDataUrl is required")
	}
	if e.Prompt == nil || *e.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if e.Timestamp == nil {
		return fmt.Errorf("timestamp must be a number")
	}
	return nil
}

// SavedImage converts a validated entry into a library record, applying the
// default payload type when the file omits one.
func (e Entry) SavedImage() domain.SavedImage {
	mimeType := domain.DefaultMIMEType
	if e.MIMEType != nil && *e.MIMEType != "" {
		mimeType = *e.MIMEType
	}
	return domain.SavedImage{
		ID:           *e.ID,
		ImageDataURL: *e.ImageDataURL,
		MIMEType:     mimeType,
		Prompt:       *e.Prompt,
		Timestamp:    int64(*e.Timestamp),
	}
}

// ParseExport decodes an exported library file. The document must be a JSON
// array or the whole import fails with domain.ErrImportParse; entries that
// fail validation are dropped individually, preserving the order of the rest.
func ParseExport(raw []byte) ([]domain.SavedImage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportParse, err)
	}
	if entries == nil && !isArray(raw) {
		return nil, fmt.Errorf("%w: top level is not an array", domain.ErrImportParse)
	}

	images := make([]domain.SavedImage, 0, len(entries))
	for _, rawEntry := range entries {
		var e Entry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			continue
		}
		if err := e.Validate(); err != nil {
			continue
		}
		images = append(images, e.SavedImage())
	}
	return images, nil
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
