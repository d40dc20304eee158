package engine

import (
	"context"

	"ytgrab-server/internal/models"
)

// Phase classifies a progress event coming out of the download engine.
type Phase int

const (
	PhaseDownloading Phase = iota
	// PhaseFinished means the transfer ended and post-processing
	// (transcode/mux) may still be pending.
	PhaseFinished
)

// ProgressEvent carries the raw counters the engine reports mid-transfer.
type ProgressEvent struct {
	Phase      Phase
	Downloaded int64
	Total      int64   // 0 when the engine cannot estimate a total
	Speed      float64 // bytes per second
	ETA        int64   // seconds remaining, 0 when unknown
}

// ProgressFunc receives progress events synchronously from the download task.
type ProgressFunc func(ProgressEvent)

// Request describes one download to perform.
type Request struct {
	JobID      string // temp paths are derived from this, collision-free
	URL        string
	Format     string // "video" or "audio"
	FileFormat string
	Quality    string
}

// Result is the artifact produced by a finished download.
type Result struct {
	Path  string
	Title string
}

// SearchItem is one hit from the engine's keyword search.
type SearchItem struct {
	ID       string
	Title    string
	Duration float64
}

// Engine is the media-fetch collaborator: it resolves URLs to streams,
// selects formats and performs the actual download/transcode.
type Engine interface {
	Info(ctx context.Context, url string) (*models.InfoResponse, error)
	Download(ctx context.Context, req Request, onProgress ProgressFunc) (*Result, error)
	Search(ctx context.Context, query string, maxResults int) ([]SearchItem, error)
}
