// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestRepository(t *testing.T) LocalVisitRepository {
	t.Helper()

	storages, err := NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "nested", "visits.db")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages.VisitRepository
}

func newMockRepository(t *testing.T) (LocalVisitRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &DB{DB: sqlDB, errorClassificator: NewSQLiteErrorClassifier(), logger: logger.Nop()}
	return NewLocalVisitRepository(db, logger.Nop()), mock
}

var testClock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testRecord(n int) models.PendingVisitRecord {
	return models.PendingVisitRecord{
		LocalID:    fmt.Sprintf("offline-%d", n),
		Payload:    json.RawMessage(fmt.Sprintf(`{"title":"visit %d"}`, n)),
		SyncStatus: models.SyncStatusPending,
		CreatedAt:  testClock.Add(time.Duration(n) * time.Minute),
	}
}

func ptr[T any](v T) *T { return &v }

// ── Save / Get ────────────────────────────────────────────────────────────────

func TestSave_RoundTripWithPhotosAndCoords(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord(1)
	rec.GPSCoords = &models.GeoPoint{Latitude: -12.05, Longitude: -77.04}
	rec.Photos = []models.PendingPhoto{
		{Data: []byte("first"), FileName: "a.jpg"},
		{Data: []byte("second-photo"), FileName: "b.jpg", Size: 12},
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)

	assert.Equal(t, rec.LocalID, got.LocalID)
	assert.JSONEq(t, string(rec.Payload), string(got.Payload))
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
	assert.Nil(t, got.LastError)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.GPSCoords)
	assert.InDelta(t, -12.05, got.GPSCoords.Latitude, 1e-9)
	assert.InDelta(t, -77.04, got.GPSCoords.Longitude, 1e-9)

	require.Len(t, got.Photos, 2)
	assert.Equal(t, "a.jpg", got.Photos[0].FileName)
	assert.Nil(t, got.Photos[0].Data, "Get loads photo metadata only")
	assert.Equal(t, int64(5), got.Photos[0].Size, "size defaults to data length")
	assert.Equal(t, "b.jpg", got.Photos[1].FileName)

	full, err := repo.GetWithPhotos(ctx, rec.LocalID)
	require.NoError(t, err)
	require.Len(t, full.Photos, 2)
	assert.Equal(t, []byte("first"), full.Photos[0].Data)
	assert.Equal(t, []byte("second-photo"), full.Photos[1].Data)
	assert.Equal(t, int64(12), full.Photos[1].Size)
}

func TestGetWithPhotos_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetWithPhotos(context.Background(), "offline-missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSave_DuplicateLocalID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord(1)
	require.NoError(t, repo.Save(ctx, rec))

	err := repo.Save(ctx, rec)
	require.ErrorIs(t, err, ErrRecordAlreadyExists)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestSave_DuplicateDoesNotLeakPhotos(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord(1)
	rec.Photos = []models.PendingPhoto{{Data: []byte("x"), FileName: "x.jpg"}}
	require.NoError(t, repo.Save(ctx, rec))

	dup := rec
	dup.Photos = []models.PendingPhoto{{Data: []byte("y"), FileName: "y.jpg"}}
	require.Error(t, repo.Save(ctx, dup))

	got, err := repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)
	require.Len(t, got.Photos, 1)
	assert.Equal(t, "x.jpg", got.Photos[0].FileName)
}

func TestSave_InvalidRecord(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Save(context.Background(), models.PendingVisitRecord{Payload: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	err = repo.Save(context.Background(), models.PendingVisitRecord{LocalID: "x", Payload: json.RawMessage(`{}`), SyncStatus: "lost"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "offline-missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// ── ListPending ───────────────────────────────────────────────────────────────

func TestListPending_CreationOrderAndFilter(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// save out of order, created_at decides
	for _, n := range []int{3, 1, 2, 4} {
		require.NoError(t, repo.Save(ctx, testRecord(n)))
	}
	require.NoError(t, repo.UpdateStatus(ctx, "offline-2", models.SyncStatusSyncing, nil))
	require.NoError(t, repo.UpdateStatus(ctx, "offline-2", models.SyncStatusError, ptr("boom")))
	require.NoError(t, repo.UpdateStatus(ctx, "offline-4", models.SyncStatusSyncing, nil))

	list, err := repo.ListPending(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.LocalID)
	}
	assert.Equal(t, []string{"offline-1", "offline-2", "offline-3"}, ids, "syncing records are excluded")
	require.NotNil(t, list[1].LastError)
	assert.Equal(t, "boom", *list[1].LastError)
}

func TestListPending_PhotoMetadataOnly(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord(1)
	rec.Photos = []models.PendingPhoto{
		{Data: []byte("large-blob-1"), FileName: "1.jpg"},
		{Data: []byte("large-blob-2"), FileName: "2.jpg"},
	}
	require.NoError(t, repo.Save(ctx, rec))

	list, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Photos, 2)
	for i, photo := range list[0].Photos {
		assert.Equal(t, rec.Photos[i].FileName, photo.FileName)
		assert.Equal(t, int64(len(rec.Photos[i].Data)), photo.Size)
		assert.Nil(t, photo.Data)
	}
}

func TestListPending_EmptyStore(t *testing.T) {
	repo := newTestRepository(t)

	list, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListPending_SameTimestampOrderedByLocalID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	b := testRecord(1)
	b.LocalID = "offline-b"
	a := testRecord(1)
	a.LocalID = "offline-a"
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.Save(ctx, a))

	list, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "offline-a", list[0].LocalID)
}

// ── UpdateStatus ──────────────────────────────────────────────────────────────

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []models.SyncStatus
		next    models.SyncStatus
		wantErr error
	}{
		{name: "pending to syncing", next: models.SyncStatusSyncing},
		{name: "pending to synced is invalid", next: models.SyncStatusSynced, wantErr: ErrInvalidStatusTransition},
		{name: "pending to error is invalid", next: models.SyncStatusError, wantErr: ErrInvalidStatusTransition},
		{name: "pending to pending is invalid", next: models.SyncStatusPending, wantErr: ErrInvalidStatusTransition},
		{name: "syncing to synced", path: []models.SyncStatus{models.SyncStatusSyncing}, next: models.SyncStatusSynced},
		{name: "syncing to error", path: []models.SyncStatus{models.SyncStatusSyncing}, next: models.SyncStatusError},
		{name: "error to syncing", path: []models.SyncStatus{models.SyncStatusSyncing, models.SyncStatusError}, next: models.SyncStatusSyncing},
		{name: "error to pending is invalid", path: []models.SyncStatus{models.SyncStatusSyncing, models.SyncStatusError}, next: models.SyncStatusPending, wantErr: ErrInvalidStatusTransition},
		{name: "unknown status", next: "archived", wantErr: ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t)
			ctx := context.Background()
			rec := testRecord(1)
			require.NoError(t, repo.Save(ctx, rec))

			for _, s := range tt.path {
				require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, s, ptr("step")))
			}

			err := repo.UpdateStatus(ctx, rec.LocalID, tt.next, ptr("next"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := repo.Get(ctx, rec.LocalID)
			require.NoError(t, err)
			assert.Equal(t, tt.next, got.SyncStatus)
		})
	}
}

func TestUpdateStatus_LastErrorSetAndCleared(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	rec := testRecord(1)
	require.NoError(t, repo.Save(ctx, rec))

	require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, models.SyncStatusSyncing, ptr("ignored")))
	got, err := repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Nil(t, got.LastError, "message is stored only for error")

	require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, models.SyncStatusError, ptr("422: bad plot")))
	got, err = repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "422: bad plot", *got.LastError)

	require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, models.SyncStatusSyncing, nil))
	got, err = repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)
	assert.Nil(t, got.LastError, "leaving error clears the message")
}

func TestUpdateStatus_ErrorWithoutMessage(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	rec := testRecord(1)
	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, models.SyncStatusSyncing, nil))

	require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, models.SyncStatusError, nil))

	got, err := repo.Get(ctx, rec.LocalID)
	require.NoError(t, err)
	require.NotNil(t, got.LastError)
	assert.Equal(t, ErrMsgUnknown, *got.LastError)
}

func TestUpdateStatus_UnknownIDIsIgnored(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateStatus(context.Background(), "offline-gone", models.SyncStatusSyncing, nil)
	assert.NoError(t, err)
}

// ── Remove ────────────────────────────────────────────────────────────────────

func TestRemove_Idempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := testRecord(1)
	rec.Photos = []models.PendingPhoto{{Data: []byte("p"), FileName: "p.jpg"}}
	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Save(ctx, testRecord(2)))

	require.NoError(t, repo.Remove(ctx, rec.LocalID))
	afterOnce, err := repo.ListPending(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, rec.LocalID))
	afterTwice, err := repo.ListPending(ctx)
	require.NoError(t, err)

	assert.Equal(t, afterOnce, afterTwice)
	require.Len(t, afterTwice, 1)
	assert.Equal(t, "offline-2", afterTwice[0].LocalID)

	_, err = repo.Get(ctx, rec.LocalID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRemove_NeverStored(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.Remove(context.Background(), "offline-never"))
}

// ── Discard ───────────────────────────────────────────────────────────────────

func TestDiscard(t *testing.T) {
	tests := []struct {
		name    string
		path    []models.SyncStatus
		wantErr error
	}{
		{name: "pending"},
		{name: "error", path: []models.SyncStatus{models.SyncStatusSyncing, models.SyncStatusError}},
		{name: "syncing is refused", path: []models.SyncStatus{models.SyncStatusSyncing}, wantErr: ErrRecordBeingSynced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t)
			ctx := context.Background()

			rec := testRecord(1)
			rec.Photos = []models.PendingPhoto{{Data: []byte("p"), FileName: "p.jpg"}}
			require.NoError(t, repo.Save(ctx, rec))
			for _, s := range tt.path {
				require.NoError(t, repo.UpdateStatus(ctx, rec.LocalID, s, ptr("step")))
			}

			err := repo.Discard(ctx, rec.LocalID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, ErrStorage)

				got, err := repo.GetWithPhotos(ctx, rec.LocalID)
				require.NoError(t, err, "refused discard keeps the record")
				assert.Equal(t, models.SyncStatusSyncing, got.SyncStatus)
				require.Len(t, got.Photos, 1)
				assert.Equal(t, []byte("p"), got.Photos[0].Data)
				return
			}
			require.NoError(t, err)

			_, err = repo.Get(ctx, rec.LocalID)
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestDiscard_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Discard(context.Background(), "offline-never")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDiscard_SyncingSetJustBeforeDelete(t *testing.T) {
	repo, mock := newMockRepository(t)

	// строка есть, но цикл успел перевести её в syncing: DELETE ничего не удалил
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pending_visits WHERE local_id = \\? AND sync_status <> \\?").
		WithArgs("offline-1", "syncing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT sync_status FROM pending_visits").
		WithArgs("offline-1").
		WillReturnRows(sqlmock.NewRows([]string{"sync_status"}).AddRow("syncing"))
	mock.ExpectRollback()

	err := repo.Discard(context.Background(), "offline-1")
	require.ErrorIs(t, err, ErrRecordBeingSynced)
	assert.NoError(t, mock.ExpectationsWereMet(), "photos are not touched when the delete is refused")
}

// ── Stats / RecoverInterrupted ────────────────────────────────────────────────

func TestStats_CountsPendingAndFailed(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for n := 1; n <= 4; n++ {
		require.NoError(t, repo.Save(ctx, testRecord(n)))
	}
	require.NoError(t, repo.UpdateStatus(ctx, "offline-1", models.SyncStatusSyncing, nil))
	require.NoError(t, repo.UpdateStatus(ctx, "offline-1", models.SyncStatusError, ptr("x")))
	require.NoError(t, repo.UpdateStatus(ctx, "offline-2", models.SyncStatusSyncing, nil))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PendingStats{Pending: 2, Failed: 1, Total: 3}, stats)
}

func TestRecoverInterrupted(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord(1)))
	require.NoError(t, repo.Save(ctx, testRecord(2)))
	require.NoError(t, repo.UpdateStatus(ctx, "offline-1", models.SyncStatusSyncing, nil))

	n, err := repo.RecoverInterrupted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.Get(ctx, "offline-1")
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusError, got.SyncStatus)
	require.NotNil(t, got.LastError)
	assert.Equal(t, ErrMsgSyncInterrupted, *got.LastError)

	n, err = repo.RecoverInterrupted(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ── concurrency ───────────────────────────────────────────────────────────────

func TestConcurrentSaveAndUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for n := 0; n < 10; n++ {
		require.NoError(t, repo.Save(ctx, testRecord(n)))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for n := 10; n < 30; n++ {
			assert.NoError(t, repo.Save(ctx, testRecord(n)))
		}
	}()
	go func() {
		defer wg.Done()
		for n := 0; n < 10; n++ {
			id := fmt.Sprintf("offline-%d", n)
			assert.NoError(t, repo.UpdateStatus(ctx, id, models.SyncStatusSyncing, nil))
			assert.NoError(t, repo.UpdateStatus(ctx, id, models.SyncStatusSynced, nil))
			assert.NoError(t, repo.Remove(ctx, id))
		}
	}()
	wg.Wait()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Total)
}

// ── driver failures (sqlmock) ─────────────────────────────────────────────────

func TestSave_DriverErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pending_visits").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), testRecord(1))
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_BeginErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	err := repo.Save(context.Background(), testRecord(1))
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestListPending_QueryErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM pending_visits").WillReturnError(errors.New("file is not a database"))

	_, err := repo.ListPending(context.Background())
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestStats_ScanErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"sync_status", "count"}).AddRow("pending", "not-a-number")
	mock.ExpectQuery("SELECT sync_status, COUNT").WillReturnRows(rows)

	_, err := repo.Stats(context.Background())
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestUpdateStatus_ExecErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE pending_visits").WillReturnError(errors.New("disk full"))

	err := repo.UpdateStatus(context.Background(), "offline-1", models.SyncStatusSyncing, nil)
	require.ErrorIs(t, err, ErrStorage)
}

func TestRemove_CommitErrorIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pending_visit_photos").WithArgs("offline-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM pending_visits").WithArgs("offline-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := repo.Remove(context.Background(), "offline-1")
	require.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
