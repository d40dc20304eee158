package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytgrab-server/internal/models"
)

func TestStore_CreateAndGet(t *testing.T) {
	s := New()

	require.NoError(t, s.Create("job-1"))

	job, ok := s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, models.StateQueued, job.Status)
	assert.Zero(t, job.Percent)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestStore_CreateDuplicateFails(t *testing.T) {
	s := New()

	require.NoError(t, s.Create("job-1"))
	assert.ErrorIs(t, s.Create("job-1"), ErrExists)
}

func TestStore_GetUnknownID(t *testing.T) {
	s := New()

	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestStore_UpdateMutatesInPlace(t *testing.T) {
	s := New()
	require.NoError(t, s.Create("job-1"))

	s.Update("job-1", func(j *models.Job) {
		j.Status = models.StateDownloading
		j.Percent = 42.5
	})

	job, ok := s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, models.StateDownloading, job.Status)
	assert.Equal(t, 42.5, job.Percent)
}

func TestStore_UpdateMissingIsNoOp(t *testing.T) {
	s := New()

	called := false
	s.Update("missing", func(j *models.Job) { called = true })
	assert.False(t, called)
}

func TestStore_DeleteRemovesRecord(t *testing.T) {
	s := New()
	require.NoError(t, s.Create("job-1"))

	s.Delete("job-1")

	_, ok := s.Get("job-1")
	assert.False(t, ok)

	// deleting twice must not panic
	s.Delete("job-1")
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := New()
	require.NoError(t, s.Create("job-1"))

	snap, _ := s.Get("job-1")
	snap.Percent = 99

	fresh, _ := s.Get("job-1")
	assert.Zero(t, fresh.Percent)
}

func TestStore_ConcurrentDistinctJobs(t *testing.T) {
	s := New()
	const jobs = 64
	const updates = 100

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		id := fmt.Sprintf("job-%d", i)
		require.NoError(t, s.Create(id))

		wg.Add(1)
		go func(id string, want float64) {
			defer wg.Done()
			for u := 0; u < updates; u++ {
				s.Update(id, func(j *models.Job) {
					j.Status = models.StateDownloading
					j.Percent = want
				})
			}
		}(id, float64(i))
	}
	wg.Wait()

	// every record keeps its own writer's value, never a neighbour's
	for i := 0; i < jobs; i++ {
		job, ok := s.Get(fmt.Sprintf("job-%d", i))
		require.True(t, ok)
		assert.Equal(t, float64(i), job.Percent)
	}
	assert.Equal(t, jobs, s.Len())
}
