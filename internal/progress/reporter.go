package progress

import (
	"log"
	"math"

	"github.com/dustin/go-humanize"

	"ytgrab-server/internal/engine"
	"ytgrab-server/internal/models"
)

// Sink is where progress snapshots land. *store.Store satisfies it.
type Sink interface {
	Update(id string, fn func(*models.Job))
}

// Reporter translates raw engine counters into job snapshots for one job.
type Reporter struct {
	sink  Sink
	jobID string
}

func New(sink Sink, jobID string) *Reporter {
	return &Reporter{sink: sink, jobID: jobID}
}

// Handle is attached to the engine as its progress hook. It must never fail
// past the caller: a broken snapshot write cannot abort the transfer.
func (r *Reporter) Handle(ev engine.ProgressEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("progress hook error for %s: %v", r.jobID, rec)
		}
	}()

	if ev.Phase == engine.PhaseFinished {
		r.sink.Update(r.jobID, func(j *models.Job) {
			if j.Status.IsTerminal() {
				return
			}
			j.Status = models.StateProcessing
			if j.Percent < 95 {
				j.Percent = 95
			}
			j.Downloaded, j.Total, j.Speed, j.ETA = 0, 0, 0, 0
		})
		return
	}

	percent := 0.0
	if ev.Total > 0 {
		percent = float64(ev.Downloaded) / float64(ev.Total) * 100
		if percent > 99.9 {
			percent = 99.9 // pinned below 100 until the engine says finished
		}
		percent = math.Round(percent*100) / 100
	}

	r.sink.Update(r.jobID, func(j *models.Job) {
		// once post-processing started, late transfer events are stale
		if j.Status.IsTerminal() || j.Status == models.StateProcessing {
			return
		}
		j.Status = models.StateDownloading
		if percent > j.Percent {
			j.Percent = percent
		}
		j.Downloaded = ev.Downloaded
		j.Total = ev.Total
		j.Speed = ev.Speed
		j.ETA = ev.ETA
	})

	log.Printf("progress %s: %.2f%% (%s of %s)",
		r.jobID, percent,
		humanize.Bytes(uint64(ev.Downloaded)), humanize.Bytes(uint64(ev.Total)))
}
