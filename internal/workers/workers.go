// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/service"
)

// Workers runs a set of workers, each in its own goroutine.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Run starts every worker and returns immediately. Use Wait to block until
// they have exited after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	w.logger.Info().Int("count", len(w.workers)).Msg("starting workers")
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

func (w *Workers) Wait() {
	w.wg.Wait()
}

// NewSyncJobWorker runs job with interval for the lifetime of the worker
// context and stops it on exit.
func NewSyncJobWorker(job service.SyncJob, interval time.Duration) Worker {
	return WorkerFunc(func(ctx context.Context) {
		job.Start(ctx, interval)
		<-ctx.Done()
		job.Stop()
	})
}
