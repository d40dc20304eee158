package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytgrab-server/internal/engine"
)

type fakeFallback struct {
	items []engine.SearchItem
	err   error
	query string
	max   int
}

func (f *fakeFallback) Search(_ context.Context, query string, maxResults int) ([]engine.SearchItem, error) {
	f.query = query
	f.max = maxResults
	return f.items, f.err
}

func TestSearch_FallbackWithoutAPIKey(t *testing.T) {
	fb := &fakeFallback{items: []engine.SearchItem{
		{ID: "abc123xyz00", Title: "First Hit", Duration: 212},
		{ID: "def456uvw11", Title: "Second Hit", Duration: 95},
	}}
	svc := NewService("", fb)

	results, err := svc.Search(context.Background(), "lofi beats", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "lofi beats", fb.query)
	assert.Equal(t, defaultMaxResults, fb.max)
	assert.Equal(t, "abc123xyz00", results[0].VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123xyz00", results[0].URL)
	assert.Equal(t, "https://img.youtube.com/vi/abc123xyz00/default.jpg", results[0].Thumbnail)
	assert.Equal(t, 212.0, results[0].Duration)
}

func TestSearch_FallbackErrorPropagates(t *testing.T) {
	fb := &fakeFallback{err: errors.New("engine down")}
	svc := NewService("", fb)

	_, err := svc.Search(context.Background(), "anything", 5)
	assert.EqualError(t, err, "engine down")
}

func TestSearch_DataAPI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "cats", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "3", q.Get("maxResults"))
		assert.Equal(t, "test-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": {"videoId": "vid1"},
					"snippet": {
						"title": "Cat Video",
						"channelTitle": "Cats Inc",
						"description": "meow",
						"thumbnails": {"default": {"url": "https://img.example/vid1.jpg"}}
					}
				},
				{
					"id": {"videoId": ""},
					"snippet": {"title": "channel result, skipped"}
				}
			]
		}`))
	}))
	defer ts.Close()

	svc := NewService("test-key", nil)
	svc.baseURL = ts.URL

	results, err := svc.Search(context.Background(), "cats", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "vid1", results[0].VideoID)
	assert.Equal(t, "Cat Video", results[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", results[0].URL)
	assert.Equal(t, "Cats Inc", results[0].Channel)
	assert.Equal(t, "meow", results[0].Description)
	assert.Equal(t, "https://img.example/vid1.jpg", results[0].Thumbnail)
}

func TestSearch_DataAPIErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer ts.Close()

	svc := NewService("test-key", nil)
	svc.baseURL = ts.URL

	_, err := svc.Search(context.Background(), "cats", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
