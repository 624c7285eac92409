// Package i18n localizes the user-visible messages the API returns alongside
// error codes. The browser front end renders these verbatim.
package i18n

import "golang.org/x/text/language"

// Message ids used by the handlers.
const (
	MsgBadRequest       = "bad_request"
	MsgInvalidPrompt    = "invalid_prompt"
	MsgInvalidImage     = "invalid_image"
	MsgGenerationFailed = "generation_failed"
	MsgImportParse      = "import_parse"
	MsgPersistence      = "persistence_failed"
	MsgAlreadySaved     = "already_saved"
	MsgNotFound         = "not_found"
	MsgInternal         = "internal"
)

var supported = []language.Tag{
	language.English,    // default
	language.Indonesian, // id
}

var matcher = language.NewMatcher(supported)

var catalog = map[string]map[string]string{
	"en": {
		MsgBadRequest:       "The request could not be understood.",
		MsgInvalidPrompt:    "Please enter a prompt before generating.",
		MsgInvalidImage:     "The image payload is not a valid data URL.",
		MsgGenerationFailed: "Image generation failed. Please try again.",
		MsgImportParse:      "The selected file is not a valid library export.",
		MsgPersistence:      "The library could not be saved to storage.",
		MsgAlreadySaved:     "This image is already in your library.",
		MsgNotFound:         "The requested item was not found.",
		MsgInternal:         "Something went wrong. Please try again.",
	},
	"id": {
		MsgBadRequest:       "Permintaan tidak dapat diproses.",
		MsgInvalidPrompt:    "Masukkan prompt terlebih dahulu.",
		MsgInvalidImage:     "Payload gambar bukan data URL yang valid.",
		MsgGenerationFailed: "Pembuatan gambar gagal. Silakan coba lagi.",
		MsgImportParse:      "Berkas yang dipilih bukan ekspor perpustakaan yang valid.",
		MsgPersistence:      "Perpustakaan tidak dapat disimpan ke penyimpanan.",
		MsgAlreadySaved:     "Gambar ini sudah ada di perpustakaan Anda.",
		MsgNotFound:         "Item yang diminta tidak ditemukan.",
		MsgInternal:         "Terjadi kesalahan. Silakan coba lagi.",
	},
}

// Message resolves a message id for a locale string (BCP 47 or a short code
// like "id"). Unknown locales and unknown ids fall back to English, then to
// the id itself so a missing translation never hides an error.
func Message(locale, id string) string {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	if m, ok := catalog[base.String()]; ok {
		if text, ok := m[id]; ok {
			return text
		}
	}
	if text, ok := catalog["en"][id]; ok {
		return text
	}
	return id
}
