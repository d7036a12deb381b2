package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and waits for all of them.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// TickerWorker calls task every interval until the context is cancelled.
type TickerWorker struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	logger   *logger.Logger
}

func NewTickerWorker(name string, interval time.Duration, task func(ctx context.Context) error, logger *logger.Logger) *TickerWorker {
	return &TickerWorker{name: name, interval: interval, task: task, logger: logger}
}

func (t *TickerWorker) Run(ctx context.Context) {
	if t.interval <= 0 {
		t.logger.Warn().Str("worker", t.name).Msg("non-positive interval, worker disabled")
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info().Str("worker", t.name).Dur("interval", t.interval).Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Str("worker", t.name).Msg("worker stopped")
			return
		case <-ticker.C:
			if err := t.task(ctx); err != nil {
				t.logger.Err(err).Str("worker", t.name).Msg("worker task failed")
			}
		}
	}
}
