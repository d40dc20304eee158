package delivery

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"ytgrab-server/internal/models"
	"ytgrab-server/internal/store"
)

var (
	// ErrNotFound: no such job, or its artifact is already gone.
	ErrNotFound = errors.New("download not found")
	// ErrNotReady: the job exists but has not completed yet.
	ErrNotReady = errors.New("download not completed")
)

// ChunkSize is the unit the artifact is streamed in.
const ChunkSize = 8 * 1024

// Service streams completed artifacts and reclaims their disk space after
// exactly one successful delivery.
type Service struct {
	store *store.Store
	grace time.Duration
}

// NewService creates a delivery service. grace is how long cleanup waits
// after the stream ends, absorbing slow client-side flushing.
func NewService(st *store.Store, grace time.Duration) *Service {
	return &Service{store: st, grace: grace}
}

// Artifact is a one-shot byte stream over a completed job's output file.
// It is finite and not restartable.
type Artifact struct {
	Name string
	Size int64

	file   *os.File
	once   sync.Once
	onDone func()
}

func (a *Artifact) Read(p []byte) (int, error) {
	return a.file.Read(p)
}

// Close releases the file handle and hands the artifact to deferred
// cleanup. Safe to call twice; cleanup is scheduled exactly once.
func (a *Artifact) Close() error {
	var err error
	a.once.Do(func() {
		err = a.file.Close()
		go a.onDone()
	})
	return err
}

// Open checks delivery preconditions and opens the artifact for streaming.
// No file I/O happens unless the job has completed.
func (s *Service) Open(id string) (*Artifact, error) {
	job, ok := s.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if job.Status != models.StateCompleted {
		return nil, ErrNotReady
	}

	info, err := os.Stat(job.FilePath)
	if err != nil {
		return nil, ErrNotFound
	}
	f, err := os.Open(job.FilePath)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Artifact{
		Name:   job.Filename,
		Size:   info.Size(),
		file:   f,
		onDone: func() { s.cleanup(id, job.FilePath, info.Size()) },
	}, nil
}

// cleanup deletes the artifact and its record after the grace delay. A
// lookup racing the delete sees either the completed job or not-found,
// never a dangling path. Failures are logged and swallowed.
func (s *Service) cleanup(id, path string, size int64) {
	time.Sleep(s.grace)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("cleanup: could not remove %s: %v", path, err)
	}
	s.store.Delete(id)
	log.Printf("cleanup: job %s reclaimed (%s)", id, humanize.Bytes(uint64(size)))
}
