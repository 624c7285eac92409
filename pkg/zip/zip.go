// Package zip packs saved images into downloadable archives.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"

	"studio/internal/domain"
)

type Entry struct {
	Name string
	Data []byte
}

// Archive writes the entries into a zip file held in memory.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// LibraryArchive packs the exported document together with each image decoded
// into a standalone file, so the download is usable outside the app. Entries
// whose payload cannot be decoded are skipped; the document still lists them.
func LibraryArchive(doc []byte, images []domain.SavedImage) ([]byte, error) {
	entries := []Entry{{Name: "library.json", Data: doc}}
	for _, img := range images {
		input, err := domain.ParseDataURL(img.ImageDataURL)
		if err != nil {
			continue
		}
		mimeType := input.MIMEType
		if img.MIMEType != "" {
			mimeType = img.MIMEType
		}
		entries = append(entries, Entry{
			Name: "images/" + img.ID + extensionFor(mimeType),
			Data: input.Data,
		})
	}
	return Archive(entries)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
