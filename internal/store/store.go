package store

import (
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"ytgrab-server/internal/models"
)

// ErrExists is returned when creating a job id that is already registered.
var ErrExists = errors.New("job already exists")

const shardCount = 16

// Store is the single source of truth for job state. It is sharded by job id
// so that jobs do not serialize against each other: same-id operations are
// mutually exclusive, different ids usually land on different shards.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

func New() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].jobs = make(map[string]*models.Job)
	}
	return s
}

func (s *Store) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.shards[h.Sum32()%shardCount]
}

// Create registers a fresh job in queued state.
func (s *Store) Create(id string) error {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.jobs[id]; ok {
		return ErrExists
	}
	sh.jobs[id] = &models.Job{
		ID:        id,
		Status:    models.StateQueued,
		CreatedAt: time.Now(),
	}
	return nil
}

// Get returns a snapshot copy of the job, so callers can never mutate
// shared state behind the shard lock.
func (s *Store) Get(id string) (models.Job, bool) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	job, ok := sh.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return *job, true
}

// Update applies fn to the current job state under the shard lock.
// A missing id is a no-op: a mutation racing a delete is expected and benign.
func (s *Store) Update(id string, fn func(*models.Job)) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if job, ok := sh.jobs[id]; ok {
		fn(job)
	}
}

// Delete removes the job record. Lookups after Delete report not found.
func (s *Store) Delete(id string) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.jobs, id)
}

// Len counts jobs across all shards.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		n += len(s.shards[i].jobs)
		s.shards[i].mu.RUnlock()
	}
	return n
}
