package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio/internal/http/handlers"
	"studio/internal/infra"
	"studio/internal/middleware"
)

// NewRouter wires the middleware chain and the versioned API surface.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.I18N(cfg.DefaultLocale, lookup))

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/styles", app.Styles)
	r.Post("/v1/images/generate", app.ImagesGenerate)

	r.Route("/v1/library", func(r chi.Router) {
		r.Get("/", app.LibraryList)
		r.Post("/", app.LibrarySave)
		r.Get("/export", app.LibraryExport)
		r.Post("/import", app.LibraryImport)
		r.Post("/contains", app.LibraryContains)
		r.Delete("/{id}", app.LibraryDelete)
		r.Get("/{id}/input", app.LibraryReuseInput)
	})

	return r
}
