package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ytgrab-server/internal/engine"
	"ytgrab-server/internal/models"
)

const (
	defaultAPIBaseURL = "https://www.googleapis.com/youtube/v3/search"
	defaultMaxResults = 10
)

// Fallback is the engine-backed keyword search used when no Data API key
// is configured.
type Fallback interface {
	Search(ctx context.Context, query string, maxResults int) ([]engine.SearchItem, error)
}

// Service answers keyword searches, via the YouTube Data API v3 when a key
// is configured and via the engine otherwise.
type Service struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	fallback Fallback
}

func NewService(apiKey string, fallback Fallback) *Service {
	return &Service{
		apiKey:   apiKey,
		baseURL:  defaultAPIBaseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		fallback: fallback,
	}
}

func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if s.apiKey == "" {
		return s.viaEngine(ctx, query, maxResults)
	}
	return s.viaDataAPI(ctx, query, maxResults)
}

func (s *Service) viaEngine(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	items, err := s.fallback.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	results := make([]models.SearchResult, 0, len(items))
	for _, it := range items {
		results = append(results, models.SearchResult{
			VideoID:   it.ID,
			Title:     it.Title,
			URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", it.ID),
			Duration:  it.Duration,
			Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/default.jpg", it.ID),
		})
	}
	return results, nil
}

func (s *Service) viaDataAPI(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("part", "snippet")
	q.Set("q", query)
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", s.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
				Description  string `json:"description"`
				Thumbnails   struct {
					Default struct {
						URL string `json:"url"`
					} `json:"default"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search response parse error: %w", err)
	}

	results := make([]models.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, models.SearchResult{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID),
			Thumbnail:   item.Snippet.Thumbnails.Default.URL,
			Channel:     item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
		})
	}
	return results, nil
}
