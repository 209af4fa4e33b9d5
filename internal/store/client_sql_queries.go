// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-visit-sync/models"
)

const (
	pendingVisitsTable      = "pending_visits"
	pendingVisitPhotosTable = "pending_visit_photos"

	// ErrMsgSyncInterrupted is stored on records found in syncing at startup.
	ErrMsgSyncInterrupted = "sync interrupted"

	// ErrMsgUnknown is stored when a record is moved to error without a
	// message.
	ErrMsgUnknown = "unknown sync error"
)

const (
	insertPendingVisit = `
		INSERT INTO pending_visits (
			local_id,
			payload,
			latitude,
			longitude,
			sync_status,
			last_error,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	insertPendingVisitPhoto = `
		INSERT INTO pending_visit_photos (
			local_id,
			position,
			file_name,
			size_bytes,
			data
		) VALUES (?, ?, ?, ?, ?);`

	deletePendingVisitPhotos = `DELETE FROM pending_visit_photos WHERE local_id = ?;`
	deletePendingVisit       = `DELETE FROM pending_visits WHERE local_id = ?;`

	getSyncStatus = `SELECT sync_status FROM pending_visits WHERE local_id = ?;`
)

var (
	visitColumns = []string{"local_id", "payload", "latitude", "longitude", "sync_status", "last_error", "created_at"}
	photoColumns     = []string{"local_id", "position", "file_name", "size_bytes", "data"}
	photoInfoColumns = []string{"local_id", "position", "file_name", "size_bytes"}

	awaitingStatuses = awaitingStatusStrings()
)

func awaitingStatusStrings() []string {
	var out []string
	for _, s := range models.AllSyncStatuses {
		if s.AwaitingSync() {
			out = append(out, string(s))
		}
	}
	return out
}

func statusStrings(statuses []models.SyncStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// buildListPendingQuery selects records that wait for sync in creation order.
func buildListPendingQuery() (string, []any, error) {
	query, args, err := sq.Select(visitColumns...).
		From(pendingVisitsTable).
		Where(sq.Eq{"sync_status": awaitingStatuses}).
		OrderBy("created_at", "local_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildGetVisitQuery selects a single record by local id.
func buildGetVisitQuery(localID string) (string, []any, error) {
	query, args, err := sq.Select(visitColumns...).
		From(pendingVisitsTable).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildPhotosQuery selects photos of the given records ordered by record and
// position. Photo data is selected only when withData is set.
func buildPhotosQuery(localIDs []string, withData bool) (string, []any, error) {
	columns := photoInfoColumns
	if withData {
		columns = photoColumns
	}
	query, args, err := sq.Select(columns...).
		From(pendingVisitPhotosTable).
		Where(sq.Eq{"local_id": localIDs}).
		OrderBy("local_id", "position").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateStatusQuery moves a record to status only when its current status
// allows that transition.
func buildUpdateStatusQuery(localID string, status models.SyncStatus, lastError *string) (string, []any, error) {
	query, args, err := sq.Update(pendingVisitsTable).
		Set("sync_status", string(status)).
		Set("last_error", lastError).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"sync_status": statusStrings(models.PreviousStatuses(status))}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildDiscardQuery deletes a record unless a sync cycle holds it.
func buildDiscardQuery(localID string) (string, []any, error) {
	query, args, err := sq.Delete(pendingVisitsTable).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.NotEq{"sync_status": string(models.SyncStatusSyncing)}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildStatsQuery counts awaiting records per status.
func buildStatsQuery() (string, []any, error) {
	query, args, err := sq.Select("sync_status", "COUNT(*)").
		From(pendingVisitsTable).
		Where(sq.Eq{"sync_status": awaitingStatuses}).
		GroupBy("sync_status").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRecoverInterruptedQuery moves every syncing record to error.
func buildRecoverInterruptedQuery() (string, []any, error) {
	query, args, err := sq.Update(pendingVisitsTable).
		Set("sync_status", string(models.SyncStatusError)).
		Set("last_error", ErrMsgSyncInterrupted).
		Where(sq.Eq{"sync_status": string(models.SyncStatusSyncing)}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
