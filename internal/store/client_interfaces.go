// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-visit-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalVisitRepository is the durable client-side store of captured visits.
// Every method is atomic for the single record it touches; failures of the
// storage itself are wrapped with [ErrStorage].
type LocalVisitRepository interface {
	// Save inserts record together with its photos. It fails with
	// [ErrRecordAlreadyExists] when the local id is already stored.
	Save(ctx context.Context, record models.PendingVisitRecord) error

	// ListPending returns all pending and error records in creation order.
	// Photos carry their name and size only; Data is nil.
	ListPending(ctx context.Context) ([]models.PendingVisitRecord, error)

	// Get returns a single record or [ErrRecordNotFound]. Photos are loaded
	// without Data, as in ListPending.
	Get(ctx context.Context, localID string) (models.PendingVisitRecord, error)

	// GetWithPhotos is Get with photo Data loaded. The sync engine calls it
	// for one record at a time.
	GetWithPhotos(ctx context.Context, localID string) (models.PendingVisitRecord, error)

	// UpdateStatus moves a record to status. errMsg is stored only for
	// [models.SyncStatusError]. An unknown local id is logged and ignored.
	UpdateStatus(ctx context.Context, localID string, status models.SyncStatus, errMsg *string) error

	// Remove deletes a record and its photos. Removing an absent id is not
	// an error.
	Remove(ctx context.Context, localID string) error

	// Discard deletes a record on user request. It fails with
	// [ErrRecordNotFound] for an absent id and with [ErrRecordBeingSynced]
	// while the record is in syncing. The check and the delete are one
	// statement.
	Discard(ctx context.Context, localID string) error

	// Stats counts records that still wait for sync.
	Stats(ctx context.Context) (models.PendingStats, error)

	// RecoverInterrupted moves records left in syncing by a previous process
	// to error and returns how many were changed.
	RecoverInterrupted(ctx context.Context) (int64, error)
}
