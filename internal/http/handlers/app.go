package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/i18n"
	"studio/internal/infra"
	"studio/internal/library"
	"studio/internal/middleware"
	"studio/internal/providers/image"
)

// App bundles the dependencies the handlers need.
type App struct {
	Logger    infra.Logger
	Library   *library.Store
	Generator image.Generator
}

func NewApp(logger infra.Logger, lib *library.Store, gen image.Generator) *App {
	return &App{Logger: logger, Library: lib, Generator: gen}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes a machine-readable code plus a message localized for the
// request's locale.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, msgID string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, map[string]string{
		"error":   code,
		"message": i18n.Message(locale, msgID),
	})
}
