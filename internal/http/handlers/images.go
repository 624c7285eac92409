package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio/internal/domain"
	"studio/internal/i18n"
	"studio/internal/providers/image"
)

type generateRequest struct {
	Prompt      string   `json:"prompt"`
	Style       string   `json:"style"`
	AspectRatio string   `json:"aspect_ratio"`
	Images      []string `json:"images"` // reference images as data URLs, at most two
}

type generateResponse struct {
	ImageDataURL string `json:"imageDataUrl"`
	MIMEType     string `json:"mimeType"`
	Prompt       string `json:"prompt"`
	Saved        bool   `json:"saved"`
}

// ImagesGenerate forwards one prompt to the generation provider and returns
// the result as a data URL, ready for the front end to display or save.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", i18n.MsgBadRequest)
		return
	}

	inputs := make([]domain.ImageInput, 0, len(req.Images))
	for _, raw := range req.Images {
		input, err := domain.ParseDataURL(raw)
		if err != nil {
			a.error(w, r, http.StatusBadRequest, "invalid_image", i18n.MsgInvalidImage)
			return
		}
		inputs = append(inputs, input)
	}

	result, err := a.Generator.Generate(r.Context(), image.GenerateRequest{
		Prompt:      req.Prompt,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
		Images:      inputs,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidPrompt):
		a.error(w, r, http.StatusBadRequest, "invalid_prompt", i18n.MsgInvalidPrompt)
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, r, http.StatusBadGateway, "generation_failed", i18n.MsgGenerationFailed)
		return
	}

	dataURL := domain.DataURL(result.Data, result.MIMEType)
	a.json(w, http.StatusOK, generateResponse{
		ImageDataURL: dataURL,
		MIMEType:     result.MIMEType,
		Prompt:       req.Prompt,
		Saved:        a.Library.IsSaved(dataURL),
	})
}

// Styles returns the preset catalog for the front end's picker.
func (a *App) Styles(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": image.Styles()})
}
