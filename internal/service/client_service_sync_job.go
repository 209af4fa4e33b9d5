// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/models"
)

type syncTrigger interface {
	SyncNow(ctx context.Context) (models.SyncReport, error)
}

type clientSyncJob struct {
	syncService syncTrigger
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that retries pending visits on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService syncTrigger, logger *logger.Logger) SyncJob {
	return &clientSyncJob{syncService: syncService, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a goroutine that calls SyncNow every interval. Ticks that find the
// engine offline or busy are dropped by the engine itself.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	j.Stop()
	if interval <= 0 {
		return
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.syncService.SyncNow(jobCtx); err != nil {
					j.logger.Err(err).Str("func", "clientSyncJob.Start").Msg("periodic sync failed")
				}
			}
		}
	}()
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
