package i18n

import "testing"

func TestMessage(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		id     string
		want   string
	}{
		{"english", "en", MsgGenerationFailed, "Image generation failed. Please try again."},
		{"indonesian", "id", MsgGenerationFailed, "Pembuatan gambar gagal. Silakan coba lagi."},
		{"regional tag", "id-ID", MsgAlreadySaved, "Gambar ini sudah ada di perpustakaan Anda."},
		{"unknown locale falls back to english", "fr", MsgImportParse, "The selected file is not a valid library export."},
		{"empty locale", "", MsgNotFound, "The requested item was not found."},
		{"unknown id falls back to id string", "en", "mystery", "mystery"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.locale, tc.id); got != tc.want {
				t.Fatalf("Message(%q, %q) = %q, want %q", tc.locale, tc.id, got, tc.want)
			}
		})
	}
}
