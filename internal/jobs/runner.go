package jobs

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ytgrab-server/internal/engine"
	"ytgrab-server/internal/models"
	"ytgrab-server/internal/progress"
	"ytgrab-server/internal/store"
)

// ErrEmptyURL is returned when a submission carries no URL.
var ErrEmptyURL = errors.New("url required")

// Runner launches one background task per submitted job and drives it to a
// terminal state. It never retries: a failed job needs a fresh submission.
type Runner struct {
	store  *store.Store
	engine engine.Engine
}

func NewRunner(st *store.Store, eng engine.Engine) *Runner {
	return &Runner{store: st, engine: eng}
}

// Submit validates the request, registers a queued job and starts the
// download in the background. Concurrency is unbounded by design.
func (r *Runner) Submit(req models.DownloadRequest) (string, error) {
	if strings.TrimSpace(req.URL) == "" {
		return "", ErrEmptyURL
	}
	if req.Format == "" {
		req.Format = "video"
	}
	if req.FileFormat == "" {
		if req.Format == "audio" {
			req.FileFormat = "mp3"
		} else {
			req.FileFormat = "mp4"
		}
	}
	if req.Quality == "" {
		req.Quality = "best"
	}

	id := uuid.New().String()
	if err := r.store.Create(id); err != nil {
		return "", err
	}

	go r.run(id, req)

	return id, nil
}

func (r *Runner) run(id string, req models.DownloadRequest) {
	reporter := progress.New(r.store, id)

	res, err := r.engine.Download(context.Background(), engine.Request{
		JobID:      id,
		URL:        req.URL,
		Format:     req.Format,
		FileFormat: req.FileFormat,
		Quality:    req.Quality,
	}, reporter.Handle)

	if err != nil {
		log.Printf("job %s failed: %v", id, err)
		r.store.Update(id, func(j *models.Job) {
			j.Status = models.StateError
			j.Error = err.Error()
			j.Downloaded, j.Total, j.Speed, j.ETA = 0, 0, 0, 0
		})
		return
	}

	r.store.Update(id, func(j *models.Job) {
		j.Status = models.StateCompleted
		j.Percent = 100
		j.FilePath = res.Path
		j.Filename = filepath.Base(res.Path)
		j.Title = res.Title
		j.Error = ""
		j.Downloaded, j.Total, j.Speed, j.ETA = 0, 0, 0, 0
	})
	log.Printf("job %s completed: %s", id, filepath.Base(res.Path))
}
