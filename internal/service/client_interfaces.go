// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-visit-sync/models"
)

// ConnectivitySource is the part of the connectivity monitor the sync engine
// depends on.
type ConnectivitySource interface {
	State() models.ConnectivityState
	OnTransition(fn func(models.ConnectivityState))
}

// VisitSyncService replays locally captured visits against the hosted
// platform.
type VisitSyncService interface {
	// SyncNow runs one cycle over every pending and error record. A trigger
	// that arrives while offline or while another cycle runs is dropped and
	// reported with Skipped set; that is not an error. A failure of the local
	// store aborts the cycle and is returned.
	SyncNow(ctx context.Context) (models.SyncReport, error)

	// Status returns what the UI renders: pending counter, busy flag, last
	// completion time and aggregate error.
	Status() models.SyncStatusSnapshot

	// Start subscribes the engine to connectivity changes. Every time the
	// platform becomes reachable a cycle is started in the background. Calls
	// after the first are no-ops.
	Start(ctx context.Context)

	// Refresh recomputes the pending counter from the store.
	Refresh(ctx context.Context) error

	// Wait blocks until background cycles started by Start have returned.
	Wait()
}

// VisitCaptureService stores visits captured on the device.
type VisitCaptureService interface {
	// Capture validates req, assigns a local id and saves it as pending.
	Capture(ctx context.Context, req models.VisitCaptureRequest) (models.VisitCaptureResponse, error)

	// ListPending returns records waiting for sync without photo content.
	ListPending(ctx context.Context) ([]models.PendingVisitView, error)

	// Get returns a single stored record without photo content.
	Get(ctx context.Context, localID string) (models.PendingVisitView, error)

	// Discard removes a record the user gave up on. Records currently
	// being submitted cannot be discarded.
	Discard(ctx context.Context, localID string) error

	// RecoverInterrupted moves records left in syncing by a previous run to
	// error. It is called once at startup before any cycle.
	RecoverInterrupted(ctx context.Context) (int64, error)
}

// SyncJob triggers SyncNow on a fixed interval.
type SyncJob interface {
	// Start launches the ticker goroutine. A non-positive interval leaves the
	// job disabled. Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the goroutine and blocks until it has exited.
	Stop()
}

// AppInfoService exposes build metadata to the local API.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}
