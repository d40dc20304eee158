package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor sweeps the temp area for artifacts that were completed but never
// delivered. Fresh files belong to running jobs and are left alone.
type Janitor struct {
	cron    *cron.Cron
	tempDir string
	maxAge  time.Duration
}

func NewJanitor(tempDir string, maxAge time.Duration) *Janitor {
	return &Janitor{
		cron:    cron.New(),
		tempDir: tempDir,
		maxAge:  maxAge,
	}
}

// Start schedules periodic sweeps until Stop is called.
func (j *Janitor) Start(every time.Duration) error {
	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", every), j.Sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

// Sweep removes files older than maxAge. Best effort, like all cleanup.
func (j *Janitor) Sweep() {
	entries, err := os.ReadDir(j.tempDir)
	if err != nil {
		log.Printf("janitor: cannot read temp dir: %v", err)
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(j.tempDir, e.Name())); err != nil {
				log.Printf("janitor: could not remove %s: %v", e.Name(), err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		log.Printf("janitor: removed %d stale file(s)", removed)
	}
}
