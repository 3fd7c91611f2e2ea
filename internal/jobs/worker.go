package jobs

import (
	"context"
	"log"
	"math"
	"time"
)

// Worker drains the job queue and runs resyncs on a background context.
// With EnqueueEvery set it also schedules a periodic resync, which bounds
// how stale the registered-region set can stay after a silently failed
// registry call.
type Worker struct {
	ID           string
	Repo         *Repo
	Resync       func(ctx context.Context) error
	EnqueueEvery time.Duration
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	var periodic <-chan time.Time
	if w.EnqueueEvery > 0 {
		t := time.NewTicker(w.EnqueueEvery)
		defer t.Stop()
		periodic = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-periodic:
			if err := w.Repo.EnqueueResync("periodic", time.Now()); err != nil {
				log.Printf("worker: enqueue periodic resync: %v", err)
			}
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				log.Printf("worker claim error: %v", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeResync:
		w.handleResync(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleResync(ctx context.Context, job *Job) {
	// Resync only fails when the store read fails; registry calls are
	// fire-and-forget and never surface here.
	if err := w.Resync(ctx); err != nil {
		w.retry(job, err.Error())
		return
	}
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
