package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// DefaultMIMEType is assumed whenever the media type of an image payload
// cannot be determined.
const DefaultMIMEType = "image/png"

// SavedImage is one entry in the user's image library. The JSON field names
// are the on-storage and export-file format and must stay stable.
type SavedImage struct {
	ID           string `json:"id"`
	ImageDataURL string `json:"imageDataUrl"`
	MIMEType     string `json:"mimeType"`
	Prompt       string `json:"prompt"`
	Timestamp    int64  `json:"timestamp"`
}

// ImageInput is a decoded image in the shape the generation provider accepts
// as a reference input.
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// NewSavedImage builds a library entry for a freshly generated image,
// stamping the creation instant in epoch milliseconds.
func NewSavedImage(id, imageDataURL, mimeType, prompt string) SavedImage {
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return SavedImage{
		ID:           id,
		ImageDataURL: imageDataURL,
		MIMEType:     mimeType,
		Prompt:       prompt,
		Timestamp:    time.Now().UnixMilli(),
	}
}

// DataURL encodes raw image bytes as a self-contained data URL.
func DataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURL splits a base64 data URL into raw bytes and a media type.
// A missing media type falls back to DefaultMIMEType.
func ParseDataURL(s string) (ImageInput, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return ImageInput{}, fmt.Errorf("%w: missing data: prefix", ErrInvalidImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ImageInput{}, fmt.Errorf("%w: missing payload separator", ErrInvalidImage)
	}
	mimeType, found := strings.CutSuffix(meta, ";base64")
	if !found {
		return ImageInput{}, fmt.Errorf("%w: payload is not base64", ErrInvalidImage)
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageInput{}, fmt.Errorf("%w: decode base64: %v", ErrInvalidImage, err)
	}
	return ImageInput{Data: data, MIMEType: mimeType}, nil
}
