package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"studio/internal/domain"
)

func readArchive(t *testing.T, raw []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = data
	}
	return files
}

func TestLibraryArchive(t *testing.T) {
	doc := []byte(`[]`)
	images := []domain.SavedImage{
		{ID: "x1", ImageDataURL: "data:image/png;base64,aGVsbG8=", MIMEType: "image/png"},
		{ID: "x2", ImageDataURL: "data:image/jpeg;base64,d29ybGQ=", MIMEType: "image/jpeg"},
		{ID: "bad", ImageDataURL: "not a data url"},
	}

	raw, err := LibraryArchive(doc, images)
	if err != nil {
		t.Fatalf("LibraryArchive: %v", err)
	}
	files := readArchive(t, raw)

	if string(files["library.json"]) != "[]" {
		t.Fatalf("document not archived: %q", files["library.json"])
	}
	if string(files["images/x1.png"]) != "hello" {
		t.Fatalf("png payload = %q", files["images/x1.png"])
	}
	if string(files["images/x2.jpg"]) != "world" {
		t.Fatalf("jpg payload = %q", files["images/x2.jpg"])
	}
	if len(files) != 3 {
		t.Fatalf("undecodable entry should be skipped, files: %d", len(files))
	}
}

func TestArchiveEmpty(t *testing.T) {
	raw, err := Archive(nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if files := readArchive(t, raw); len(files) != 0 {
		t.Fatalf("expected empty archive, got %d files", len(files))
	}
}
