package workers

import (
	"context"
	"time"
)

type Workers struct {
	workers []Worker
}

// New groups workers. Nil entries are skipped.
func New(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// IntervalJob is a job that runs on its own ticker.
type IntervalJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type every struct {
	job      IntervalJob
	interval time.Duration
}

// Every binds an interval to job so it can be registered as a Worker.
func Every(interval time.Duration, job IntervalJob) Worker {
	return &every{job: job, interval: interval}
}

func (e *every) Start(ctx context.Context) {
	e.job.Start(ctx, e.interval)
}

func (e *every) Stop() {
	e.job.Stop()
}
