package models

import (
	"time"
)

// State is the lifecycle phase of a download job.
type State string

const (
	StateQueued      State = "queued"
	StateDownloading State = "downloading"
	StateProcessing  State = "processing"
	StateCompleted   State = "completed"
	StateError       State = "error"
)

// IsRunning reports whether progress updates are still expected.
func (s State) IsRunning() bool {
	return s == StateQueued || s == StateDownloading || s == StateProcessing
}

// IsTerminal reports whether the job reached a final state.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateError
}

// Job: tüm indirme durumunu tutar - the snapshot polling clients see
type Job struct {
	ID         string    `json:"-"`
	Status     State     `json:"status"`
	Percent    float64   `json:"percent"`
	Downloaded int64     `json:"downloaded,omitempty"`
	Total      int64     `json:"total,omitempty"` // 0 when the engine reports no total
	Speed      float64   `json:"speed,omitempty"`
	ETA        int64     `json:"eta,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	FilePath   string    `json:"-"`
	Title      string    `json:"title,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"-"`
}

type DownloadRequest struct {
	URL        string `json:"url"`
	Format     string `json:"format"`      // "video" or "audio"
	FileFormat string `json:"file_format"` // mp4, mkv, mp3, wav, ...
	Quality    string `json:"quality"`     // "best", "<N>p", or an audio bitrate tier
}

type InfoRequest struct {
	URL string `json:"url"`
}

type InfoResponse struct {
	Title              string `json:"title"`
	Thumbnail          string `json:"thumbnail"`
	Duration           int64  `json:"duration"`
	Uploader           string `json:"uploader"`
	ViewCount          int64  `json:"view_count"`
	MaxQuality         string `json:"max_quality"`
	MaxHeight          int    `json:"max_height"`
	AvailableQualities []int  `json:"available_qualities"`
}

type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type SearchResult struct {
	VideoID     string  `json:"video_id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Duration    float64 `json:"duration"`
	Thumbnail   string  `json:"thumbnail"`
	Channel     string  `json:"channel,omitempty"`
	Description string  `json:"description,omitempty"`
}
