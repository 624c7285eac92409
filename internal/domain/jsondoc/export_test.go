package jsondoc

import (
	"errors"
	"testing"

	"studio/internal/domain"
)

func TestParseExport(t *testing.T) {
	raw := []byte(`[
		{"id":"a","imageDataUrl":"data:image/png;base64,AAAA","mimeType":"image/png","prompt":"first","timestamp":1700000000000},
		{"id":"b","imageDataUrl":"data:image/jpeg;base64,BBBB","prompt":"second","timestamp":1700000000001}
	]`)
	images, err := ParseExport(raw)
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(images))
	}
	if images[0].ID != "a" || images[1].ID != "b" {
		t.Fatalf("order not preserved: %+v", images)
	}
	if images[1].MIMEType != domain.DefaultMIMEType {
		t.Fatalf("missing mimeType should default, got %q", images[1].MIMEType)
	}
}

func TestParseExportDropsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing id":        `[{"imageDataUrl":"x","prompt":"p","timestamp":1}]`,
		"empty id":          `[{"id":"","imageDataUrl":"x","prompt":"p","timestamp":1}]`,
		"missing payload":   `[{"id":"a","prompt":"p","timestamp":1}]`,
		"empty prompt":      `[{"id":"a","imageDataUrl":"x","prompt":"","timestamp":1}]`,
		"string timestamp":  `[{"id":"a","imageDataUrl":"x","prompt":"p","timestamp":"soon"}]`,
		"non-object entry":  `[42]`,
		"null entry":        `[null]`,
	}
	for name, doc := range cases {
		images, err := ParseExport([]byte(doc))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if len(images) != 0 {
			t.Fatalf("%s: entry should have been dropped, got %+v", name, images)
		}
	}
}

func TestParseExportRejectsMalformedDocument(t *testing.T) {
	for _, doc := range []string{"not json", `{"id":"a"}`, `null`, `"[]"`} {
		if _, err := ParseExport([]byte(doc)); !errors.Is(err, domain.ErrImportParse) {
			t.Fatalf("%q: expected parse error, got %v", doc, err)
		}
	}
}
