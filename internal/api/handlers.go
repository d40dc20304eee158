package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"ytgrab-server/internal/delivery"
	"ytgrab-server/internal/engine"
	"ytgrab-server/internal/jobs"
	"ytgrab-server/internal/models"
	"ytgrab-server/internal/search"
	"ytgrab-server/internal/store"
)

// Handler is the orchestration facade: it owns no state beyond delegating
// to the runner, store, delivery and search services.
type Handler struct {
	runner   *jobs.Runner
	store    *store.Store
	delivery *delivery.Service
	engine   engine.Engine
	searcher *search.Service

	infoGroup singleflight.Group
}

func NewHandler(runner *jobs.Runner, st *store.Store, del *delivery.Service, eng engine.Engine, searcher *search.Service) *Handler {
	return &Handler{
		runner:   runner,
		store:    st,
		delivery: del,
		engine:   eng,
		searcher: searcher,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Info resolves a URL to metadata and available qualities. Identical
// concurrent lookups are collapsed into one engine call.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	var req models.InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		errorJSON(w, http.StatusBadRequest, "url required")
		return
	}

	info, err, _ := h.infoGroup.Do(req.URL, func() (any, error) {
		return h.engine.Info(r.Context(), req.URL)
	})
	if err != nil {
		// resolution failures ride in the body, like the download errors
		// a poller would see
		errorJSON(w, http.StatusOK, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// CreateDownload queues a new job and returns its id immediately.
func (h *Handler) CreateDownload(w http.ResponseWriter, r *http.Request) {
	var req models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.runner.Submit(req)
	if err != nil {
		if errors.Is(err, jobs.ErrEmptyURL) {
			errorJSON(w, http.StatusBadRequest, "url required")
			return
		}
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"download_id": id,
	})
}

// Status returns the current job snapshot.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, ok := h.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"status": "not_found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// File streams the finished artifact exactly once, then lets the delivery
// service reclaim it.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	art, err := h.delivery.Open(id)
	if err != nil {
		if errors.Is(err, delivery.ErrNotReady) {
			errorJSON(w, http.StatusNotFound, "download not completed")
			return
		}
		errorJSON(w, http.StatusNotFound, "file not found")
		return
	}
	defer art.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(art.Size, 10))

	buf := make([]byte, delivery.ChunkSize)
	if _, err := io.CopyBuffer(w, art, buf); err != nil {
		// client disconnects are routine; cleanup still runs via Close
		log.Printf("delivery %s aborted: %v", id, err)
	}
}

// SearchVideos answers keyword searches.
func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		errorJSON(w, http.StatusBadRequest, "query required")
		return
	}

	results, err := h.searcher.Search(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
