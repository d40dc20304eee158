package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter sets up routes and applies global middleware.
func NewRouter(h *Handler, allowedOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(CORSMiddleware(allowedOrigins))

	r.Post("/api/info", h.Info)
	r.Post("/api/download", h.CreateDownload)
	r.Get("/api/download/status/{id}", h.Status)
	r.Get("/api/download/file/{id}", h.File)
	r.Post("/api/search", h.SearchVideos)

	return r
}
