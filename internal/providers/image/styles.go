package image

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studio/internal/domain"
)

// StyleNone leaves the prompt untouched.
const StyleNone = "none"

// stylePresets maps a preset id to the clause appended to the prompt.
var stylePresets = map[string]string{
	StyleNone:        "",
	"photorealistic": "photorealistic, natural lighting, shot on a full-frame camera",
	"anime":          "anime style, vibrant colors, clean line art",
	"watercolor":     "soft watercolor painting with visible paper texture",
	"oil-painting":   "classical oil painting, rich brush strokes",
	"pixel-art":      "retro pixel art, 16-bit palette",
	"sketch":         "loose pencil sketch, monochrome hatching",
	"3d-render":      "polished 3D render, studio lighting, octane style",
	"cyberpunk":      "cyberpunk aesthetic, neon lights, rainy night city",
}

// aspectRatios is the set the model accepts for text-only generation.
var aspectRatios = map[string]struct{}{
	"1:1":  {},
	"16:9": {},
	"9:16": {},
	"4:3":  {},
	"3:4":  {},
}

// ApplyStyle appends the preset's clause to the prompt. An empty style means
// no preset; an unknown id is rejected rather than silently ignored.
func ApplyStyle(prompt, style string) (string, error) {
	if style == "" || style == StyleNone {
		return prompt, nil
	}
	clause, ok := stylePresets[style]
	if !ok {
		return "", fmt.Errorf("%w: unknown style %q", domain.ErrInvalidPrompt, style)
	}
	return prompt + ", " + clause, nil
}

// ValidAspectRatio reports whether the tag is one the model accepts.
func ValidAspectRatio(ratio string) bool {
	_, ok := aspectRatios[ratio]
	return ok
}

// StylePreset is the catalog entry the front end renders in its picker.
type StylePreset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Styles lists the available presets with display labels, sorted by id with
// "none" first.
func Styles() []StylePreset {
	titler := cases.Title(language.English)
	out := make([]StylePreset, 0, len(stylePresets))
	for id := range stylePresets {
		out = append(out, StylePreset{
			ID:    id,
			Label: titler.String(strings.ReplaceAll(id, "-", " ")),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID == StyleNone {
			return true
		}
		if out[j].ID == StyleNone {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}
