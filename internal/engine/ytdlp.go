package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/lrstanley/go-ytdlp"

	"ytgrab-server/internal/models"
)

const progressInterval = 500 * time.Millisecond

// Standard quality ladder used to label the best tier a source can serve.
var qualityLadder = []int{2160, 1440, 1080, 720, 480, 360, 240, 144}

// Client is the production Engine: metadata comes from the YouTube innertube
// API, download and transcode are delegated to yt-dlp.
type Client struct {
	tempDir string
	yt      youtube.Client
}

func NewClient(tempDir string) *Client {
	return &Client{tempDir: tempDir}
}

var _ Engine = (*Client)(nil)

// Info resolves a URL to its metadata and the stream heights available.
func (c *Client) Info(ctx context.Context, rawURL string) (*models.InfoResponse, error) {
	video, err := c.yt.GetVideoContext(ctx, CleanURL(rawURL))
	if err != nil {
		return nil, errors.New(humanizeError(err))
	}

	seen := map[int]struct{}{}
	maxHeight := 0
	for _, f := range video.Formats {
		if !strings.Contains(f.MimeType, "video") || f.QualityLabel == "" {
			continue
		}
		h := parseHeight(f.QualityLabel)
		if h <= 0 {
			continue
		}
		seen[h] = struct{}{}
		if h > maxHeight {
			maxHeight = h
		}
	}

	heights := make([]int, 0, len(seen))
	for h := range seen {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	maxQuality := "best"
	for _, q := range qualityLadder {
		if q <= maxHeight {
			maxQuality = fmt.Sprintf("%dp", q)
			break
		}
	}

	thumbnail := ""
	if len(video.Thumbnails) > 0 {
		thumbnail = video.Thumbnails[0].URL
	}

	return &models.InfoResponse{
		Title:              video.Title,
		Thumbnail:          thumbnail,
		Duration:           int64(video.Duration / time.Second),
		Uploader:           video.Author,
		ViewCount:          int64(video.Views),
		MaxQuality:         maxQuality,
		MaxHeight:          maxHeight,
		AvailableQualities: heights,
	}, nil
}

// Download runs extraction, transfer and post-processing synchronously,
// feeding onProgress from inside the transfer.
func (c *Client) Download(ctx context.Context, req Request, onProgress ProgressFunc) (*Result, error) {
	outTmpl := filepath.Join(c.tempDir, req.JobID+".%(ext)s")

	dl := ytdlp.New().
		ForceOverwrites().
		NoPlaylist().
		NoWarnings().
		Output(outTmpl)

	if strings.EqualFold(req.Format, "audio") {
		codec := strings.ToLower(req.FileFormat)
		if codec == "" {
			codec = "mp3"
		}
		dl = dl.Format("bestaudio/best").
			ExtractAudio().
			AudioFormat(codec).
			AudioQuality(AudioBitrate(req.Quality))
	} else {
		container := strings.ToLower(req.FileFormat)
		if container == "" {
			container = "mp4"
		}
		dl = dl.Format(FormatSelector(container, req.Quality)).
			MergeOutputFormat(container)
	}

	if onProgress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(translateProgress(update))
		})
	}

	res, err := dl.Run(ctx, CleanURL(req.URL))
	if err != nil {
		return nil, errors.New(humanizeError(err))
	}

	path, title := c.resolveOutput(res, req)
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		return nil, errors.New("generated file is empty")
	}
	return &Result{Path: path, Title: title}, nil
}

// Search runs a flat ytsearch extraction and parses the JSON dump.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	dl := ytdlp.New().
		SkipDownload().
		FlatPlaylist().
		NoWarnings().
		DumpSingleJSON()

	res, err := dl.Run(ctx, fmt.Sprintf("ytsearch%d:%s", maxResults, query))
	if err != nil {
		return nil, errors.New(humanizeError(err))
	}

	var payload struct {
		Entries []struct {
			ID       string  `json:"id"`
			Title    string  `json:"title"`
			Duration float64 `json:"duration"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &payload); err != nil {
		return nil, fmt.Errorf("search result parse error: %w", err)
	}

	items := make([]SearchItem, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		if e.ID == "" {
			continue
		}
		items = append(items, SearchItem{ID: e.ID, Title: e.Title, Duration: e.Duration})
	}
	return items, nil
}

// resolveOutput derives the artifact path and title from the run result.
// Falls back to the template-derived stem when the engine reports nothing.
func (c *Client) resolveOutput(res *ytdlp.Result, req Request) (string, string) {
	path := filepath.Join(c.tempDir, req.JobID)
	title := ""
	if res != nil {
		if info, err := res.GetExtractedInfo(); err == nil && len(info) > 0 {
			if info[0].Filename != nil {
				path = *info[0].Filename
			}
			if info[0].Title != nil {
				title = *info[0].Title
			}
		}
	}
	return NormalizeExtension(path, req.Format, req.FileFormat), title
}

func translateProgress(update ytdlp.ProgressUpdate) ProgressEvent {
	ev := ProgressEvent{
		Downloaded: int64(update.DownloadedBytes),
		Total:      int64(update.TotalBytes),
	}
	switch update.Status {
	case ytdlp.ProgressStatusFinished, ytdlp.ProgressStatusPostProcessing:
		ev.Phase = PhaseFinished
	default:
		ev.Phase = PhaseDownloading
	}
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
			ev.Speed = float64(update.DownloadedBytes) / elapsed
		}
	}
	if ev.Speed > 0 && ev.Total > ev.Downloaded {
		ev.ETA = int64(float64(ev.Total-ev.Downloaded) / ev.Speed)
	}
	return ev
}
