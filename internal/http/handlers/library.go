package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio/internal/domain"
	"studio/internal/i18n"
	"studio/pkg/zip"
)

// maxImportBytes bounds library import files. Data URLs are bulky; a library
// with a few hundred images still fits comfortably.
const maxImportBytes = 100 << 20

// LibraryList returns the saved images, newest first.
func (a *App) LibraryList(w http.ResponseWriter, r *http.Request) {
	items := a.Library.List()
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

type librarySaveRequest struct {
	ImageDataURL string `json:"imageDataUrl"`
	MIMEType     string `json:"mimeType"`
	Prompt       string `json:"prompt"`
}

// LibrarySave commits a generated image into the library. This only happens
// on an explicit user action; generation alone never saves anything.
func (a *App) LibrarySave(w http.ResponseWriter, r *http.Request) {
	var req librarySaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", i18n.MsgBadRequest)
		return
	}
	if req.ImageDataURL == "" {
		a.error(w, r, http.StatusBadRequest, "invalid_image", i18n.MsgInvalidImage)
		return
	}
	if a.Library.IsSaved(req.ImageDataURL) {
		a.error(w, r, http.StatusConflict, "already_saved", i18n.MsgAlreadySaved)
		return
	}

	saved, err := a.Library.Add(r.Context(), domain.NewSavedImage("", req.ImageDataURL, req.MIMEType, req.Prompt))
	switch {
	case errors.Is(err, domain.ErrInvalidPrompt):
		a.error(w, r, http.StatusBadRequest, "invalid_prompt", i18n.MsgInvalidPrompt)
		return
	case errors.Is(err, domain.ErrInvalidImage):
		a.error(w, r, http.StatusBadRequest, "invalid_image", i18n.MsgInvalidImage)
		return
	case errors.Is(err, domain.ErrPersistence):
		a.Logger.Error().Err(err).Msg("library save could not be persisted")
		a.error(w, r, http.StatusInternalServerError, "persistence_failed", i18n.MsgPersistence)
		return
	case err != nil:
		a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
		return
	}
	a.json(w, http.StatusCreated, saved)
}

// LibraryDelete removes one entry. Deleting an absent id still succeeds.
func (a *App) LibraryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request", i18n.MsgBadRequest)
		return
	}
	if err := a.Library.Remove(r.Context(), id); err != nil {
		a.Logger.Error().Err(err).Str("id", id).Msg("library delete could not be persisted")
		a.error(w, r, http.StatusInternalServerError, "persistence_failed", i18n.MsgPersistence)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LibraryExport streams the whole library as a downloadable JSON file, in
// the exact format LibraryImport accepts back. With ?format=zip the same
// document ships inside an archive alongside each image as a plain file.
func (a *App) LibraryExport(w http.ResponseWriter, r *http.Request) {
	data, err := a.Library.ExportAll()
	if err != nil {
		a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
		return
	}

	if r.URL.Query().Get("format") == "zip" {
		archive, err := zip.LibraryArchive(data, a.Library.List())
		if err != nil {
			a.Logger.Error().Err(err).Msg("library archive failed")
			a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="image-library.zip"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(archive)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="image-library.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// LibraryImport merges an exported library file into the current one and
// reports how many entries were actually added. Zero is a normal outcome;
// only an unparseable file is an error.
func (a *App) LibraryImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", i18n.MsgBadRequest)
		return
	}
	added, err := a.Library.ImportMerge(r.Context(), raw)
	switch {
	case errors.Is(err, domain.ErrImportParse):
		a.error(w, r, http.StatusBadRequest, "import_parse", i18n.MsgImportParse)
		return
	case errors.Is(err, domain.ErrPersistence):
		a.Logger.Error().Err(err).Msg("library import could not be persisted")
		a.error(w, r, http.StatusInternalServerError, "persistence_failed", i18n.MsgPersistence)
		return
	case err != nil:
		a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
		return
	}
	a.json(w, http.StatusOK, map[string]int{"added": added})
}

type libraryContainsRequest struct {
	ImageDataURL string `json:"imageDataUrl"`
}

// LibraryContains tells the front end whether an exact payload is already
// saved, so it can disable the save button.
func (a *App) LibraryContains(w http.ResponseWriter, r *http.Request) {
	var req libraryContainsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", i18n.MsgBadRequest)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"saved": a.Library.IsSaved(req.ImageDataURL)})
}

// LibraryReuseInput returns a saved entry in the shape the generator accepts
// as a reference image.
func (a *App) LibraryReuseInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	input, err := a.Library.SelectForReuse(id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", i18n.MsgNotFound)
		return
	case errors.Is(err, domain.ErrInvalidImage):
		a.error(w, r, http.StatusUnprocessableEntity, "invalid_image", i18n.MsgInvalidImage)
		return
	case err != nil:
		a.error(w, r, http.StatusInternalServerError, "internal", i18n.MsgInternal)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"data":     base64.StdEncoding.EncodeToString(input.Data),
		"mimeType": input.MIMEType,
	})
}
