// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-visit-sync/internal/adapter"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/store"
	"github.com/MKhiriev/go-visit-sync/models"
)

type visitSyncService struct {
	store  store.LocalVisitRepository
	client adapter.SubmissionClient
	conn   ConnectivitySource
	now    func() time.Time

	logger *logger.Logger

	running   atomic.Bool
	wasOnline atomic.Bool
	startOnce sync.Once
	wg        sync.WaitGroup

	mu           sync.RWMutex
	pendingCount int
	lastSyncTime *time.Time
	lastError    *string
}

func NewVisitSyncService(storages *store.ClientStorages, client adapter.SubmissionClient, conn ConnectivitySource, logger *logger.Logger) VisitSyncService {
	return &visitSyncService{
		store:  storages.VisitRepository,
		client: client,
		conn:   conn,
		now:    time.Now,
		logger: logger,
	}
}

func (s *visitSyncService) SyncNow(ctx context.Context) (models.SyncReport, error) {
	report := models.SyncReport{StartedAt: s.now()}

	if !s.conn.State().IsOnline {
		return s.skipped(report, models.SkipReasonOffline), nil
	}
	if !s.running.CompareAndSwap(false, true) {
		return s.skipped(report, models.SkipReasonBusy), nil
	}
	defer s.running.Store(false)

	log := s.logger.With().Str("func", "visitSyncService.SyncNow").Logger()

	records, err := s.store.ListPending(ctx)
	if err != nil {
		return s.abort(report, fmt.Errorf("%w: list pending: %w", ErrSyncAborted, err))
	}

	if len(records) == 0 {
		s.finish(models.PendingStats{})
		report.FinishedAt = s.now()
		return report, nil
	}

	log.Info().Int("records", len(records)).Msg("sync cycle started")

	var cancelErr error
	for _, record := range records {
		if err = ctx.Err(); err != nil {
			cancelErr = err
			break
		}

		processed, synced, err := s.syncRecord(ctx, record)
		if err != nil {
			return s.abort(report, fmt.Errorf("%w: record %s: %w", ErrSyncAborted, record.LocalID, err))
		}
		if !processed {
			continue
		}

		report.Processed++
		if synced {
			report.Synced++
		} else {
			report.Failed++
		}
	}

	stats, err := s.store.Stats(context.WithoutCancel(ctx))
	if err != nil {
		return s.abort(report, fmt.Errorf("%w: stats: %w", ErrSyncAborted, err))
	}

	s.finish(stats)
	report.Remaining = stats.Total
	report.FinishedAt = s.now()

	log.Info().
		Int("processed", report.Processed).
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Int("remaining", report.Remaining).
		Msg("sync cycle finished")

	return report, cancelErr
}

// syncRecord runs the per-record state machine. processed is false when the
// record was skipped because it changed status or was discarded concurrently.
// A non-nil error is always a local store failure.
func (s *visitSyncService) syncRecord(ctx context.Context, listed models.PendingVisitRecord) (processed, synced bool, err error) {
	log := s.logger.With().
		Str("func", "visitSyncService.syncRecord").
		Str("local_id", listed.LocalID).
		Logger()

	// bookkeeping writes must land even if the cycle is being cancelled
	storeCtx := context.WithoutCancel(ctx)

	if err = s.store.UpdateStatus(storeCtx, listed.LocalID, models.SyncStatusSyncing, nil); err != nil {
		if errors.Is(err, store.ErrInvalidStatusTransition) {
			log.Warn().Err(err).Msg("record changed status concurrently, skipping")
			return false, false, nil
		}
		return false, false, err
	}

	// a syncing record cannot be discarded; photo data is loaded per record
	record, err := s.store.GetWithPhotos(storeCtx, listed.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		log.Warn().Msg("record discarded concurrently, skipping")
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	visit, err := s.client.CreateVisit(ctx, record.Payload)
	if err != nil {
		msg := err.Error()
		log.Warn().Err(err).Bool("validation", adapter.IsValidation(err)).Msg("visit submission failed")

		if err = s.store.UpdateStatus(storeCtx, record.LocalID, models.SyncStatusError, &msg); err != nil {
			return true, false, err
		}
		return true, false, nil
	}

	s.runSecondary(ctx, log, visit.ID, s.secondaryOperations(visit.ID, record))

	if err = s.store.UpdateStatus(storeCtx, record.LocalID, models.SyncStatusSynced, nil); err != nil {
		return true, false, err
	}
	if err = s.store.Remove(storeCtx, record.LocalID); err != nil {
		return true, false, err
	}

	log.Debug().Str("visit_id", visit.ID).Msg("visit synced")
	return true, true, nil
}

// secondaryOperation is a best-effort submission attached to an already
// created visit. Its failure never affects the parent record.
type secondaryOperation struct {
	name       string
	photoIndex int
	fileName   string
	run        func(ctx context.Context) error
}

func (s *visitSyncService) secondaryOperations(visitID string, record models.PendingVisitRecord) []secondaryOperation {
	ops := make([]secondaryOperation, 0, len(record.Photos)+1)

	if record.GPSCoords != nil {
		coords := *record.GPSCoords
		ops = append(ops, secondaryOperation{
			name:       adapter.OpCreateGeoPoint,
			photoIndex: -1,
			run: func(ctx context.Context) error {
				return s.client.CreateGeoPoint(ctx, visitID, coords)
			},
		})
	}

	for i, photo := range record.Photos {
		ops = append(ops, secondaryOperation{
			name:       adapter.OpUploadPhoto,
			photoIndex: i,
			fileName:   photo.FileName,
			run: func(ctx context.Context) error {
				return s.client.UploadPhoto(ctx, visitID, photo)
			},
		})
	}

	return ops
}

func (s *visitSyncService) runSecondary(ctx context.Context, log zerolog.Logger, visitID string, ops []secondaryOperation) {
	for _, op := range ops {
		if err := runIsolated(ctx, op.run); err != nil {
			event := log.Warn().Err(err).
				Str("op", op.name).
				Str("visit_id", visitID)
			if op.photoIndex >= 0 {
				event = event.Int("photo_index", op.photoIndex).Str("file_name", op.fileName)
			}
			event.Msg("secondary submission failed, visit kept as synced")
		}
	}
}

func runIsolated(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

func (s *visitSyncService) skipped(report models.SyncReport, reason models.SkipReason) models.SyncReport {
	s.logger.Debug().
		Str("func", "visitSyncService.SyncNow").
		Str("reason", string(reason)).
		Msg("sync trigger skipped")

	report.Skipped = true
	report.SkipReason = reason
	report.FinishedAt = report.StartedAt
	return report
}

func (s *visitSyncService) abort(report models.SyncReport, err error) (models.SyncReport, error) {
	s.logger.Err(err).Str("func", "visitSyncService.SyncNow").Msg("sync cycle aborted")

	msg := err.Error()
	s.mu.Lock()
	s.lastError = &msg
	s.mu.Unlock()

	report.FinishedAt = s.now()
	return report, err
}

func (s *visitSyncService) finish(stats models.PendingStats) {
	now := s.now()

	var lastError *string
	if stats.Failed > 0 {
		msg := fmt.Sprintf("%d visits failed to sync", stats.Failed)
		lastError = &msg
	}

	s.mu.Lock()
	s.pendingCount = stats.Total
	s.lastSyncTime = &now
	s.lastError = lastError
	s.mu.Unlock()
}

func (s *visitSyncService) Status() models.SyncStatusSnapshot {
	conn := s.conn.State()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.SyncStatusSnapshot{
		PendingCount:    s.pendingCount,
		IsSyncing:       s.running.Load(),
		LastSyncTime:    s.lastSyncTime,
		Error:           s.lastError,
		Online:          conn.IsOnline,
		JustReconnected: conn.JustReconnected,
	}
}

func (s *visitSyncService) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.conn.OnTransition(func(state models.ConnectivityState) {
			s.onConnectivity(ctx, state)
		})
		s.onConnectivity(ctx, s.conn.State())
	})
}

// onConnectivity starts a cycle on the edge into online. The end of the
// reconnect window arrives as a second online state and is ignored.
func (s *visitSyncService) onConnectivity(ctx context.Context, state models.ConnectivityState) {
	wasOnline := s.wasOnline.Swap(state.IsOnline)
	if !state.IsOnline || wasOnline || ctx.Err() != nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.SyncNow(ctx); err != nil {
			s.logger.Err(err).Str("func", "visitSyncService.onConnectivity").Msg("sync after reconnect failed")
		}
	}()
}

func (s *visitSyncService) Refresh(ctx context.Context) error {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("refresh pending count: %w", err)
	}

	s.mu.Lock()
	s.pendingCount = stats.Total
	s.mu.Unlock()
	return nil
}

func (s *visitSyncService) Wait() {
	s.wg.Wait()
}
