// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-visit-sync/internal/adapter"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/mock"
	"github.com/MKhiriev/go-visit-sync/internal/store"
	"github.com/MKhiriev/go-visit-sync/models"
)

// fakeConnectivity — управляемый источник состояния сети.
type fakeConnectivity struct {
	mu    sync.Mutex
	state models.ConnectivityState
	subs  []func(models.ConnectivityState)
}

func newFakeConnectivity(online bool) *fakeConnectivity {
	return &fakeConnectivity{state: models.ConnectivityState{IsOnline: online}}
}

func (f *fakeConnectivity) State() models.ConnectivityState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeConnectivity) OnTransition(fn func(models.ConnectivityState)) {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

func (f *fakeConnectivity) set(state models.ConnectivityState) {
	f.mu.Lock()
	f.state = state
	subs := slices.Clone(f.subs)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller, conn *fakeConnectivity) (
	*visitSyncService,
	*mock.MockLocalVisitRepository,
	*mock.MockSubmissionClient,
) {
	t.Helper()
	mockRepo := mock.NewMockLocalVisitRepository(ctrl)
	mockClient := mock.NewMockSubmissionClient(ctrl)

	storages := &store.ClientStorages{VisitRepository: mockRepo}
	svc := NewVisitSyncService(storages, mockClient, conn, logger.Nop()).(*visitSyncService)

	return svc, mockRepo, mockClient
}

func pendingRecord(localID string, status models.SyncStatus) models.PendingVisitRecord {
	return models.PendingVisitRecord{
		LocalID:    localID,
		Payload:    json.RawMessage(fmt.Sprintf(`{"title":%q}`, localID)),
		SyncStatus: status,
		CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

var errDisk = fmt.Errorf("%w: disk I/O error", store.ErrStorage)

// ── guard ────────────────────────────────────────────────────────────────────

func TestVisitSyncService_SyncNow_OfflineIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(false))

	report, err := svc.SyncNow(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, models.SkipReasonOffline, report.SkipReason)
	assert.Nil(t, svc.Status().LastSyncTime, "skipped trigger is not a completed cycle")
}

func TestVisitSyncService_SyncNow_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	mockRepo.EXPECT().ListPending(gomock.Any()).Return([]models.PendingVisitRecord{pendingRecord("a", models.SyncStatusPending)}, nil).Times(1)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "a", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "a").Return(pendingRecord("a", models.SyncStatusSyncing), nil)
	mockClient.EXPECT().CreateVisit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, json.RawMessage) (models.RemoteVisit, error) {
			close(entered)
			<-release
			return models.RemoteVisit{ID: "remote-a"}, nil
		}).Times(1)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "a", models.SyncStatusSynced, nil).Return(nil)
	mockRepo.EXPECT().Remove(gomock.Any(), "a").Return(nil)
	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{}, nil)

	done := make(chan models.SyncReport)
	go func() {
		report, _ := svc.SyncNow(ctx)
		done <- report
	}()

	<-entered
	assert.True(t, svc.Status().IsSyncing)

	// второй и третий триггеры во время цикла отбрасываются
	for range 2 {
		report, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.True(t, report.Skipped)
		assert.Equal(t, models.SkipReasonBusy, report.SkipReason)
	}

	close(release)
	first := <-done
	assert.False(t, first.Skipped)
	assert.Equal(t, 1, first.Synced)
	assert.False(t, svc.Status().IsSyncing)
}

// ── cycle ────────────────────────────────────────────────────────────────────

func TestVisitSyncService_SyncNow_EmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))

	mockRepo.EXPECT().ListPending(gomock.Any()).Return(nil, nil)

	report, err := svc.SyncNow(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Processed)
	status := svc.Status()
	require.NotNil(t, status.LastSyncTime)
	assert.Zero(t, status.PendingCount)
	assert.Nil(t, status.Error)
}

func TestVisitSyncService_SyncNow_StatusSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	record := pendingRecord("retry-me", models.SyncStatusError)

	gomock.InOrder(
		mockRepo.EXPECT().ListPending(ctx).Return([]models.PendingVisitRecord{record}, nil),
		mockRepo.EXPECT().UpdateStatus(gomock.Any(), "retry-me", models.SyncStatusSyncing, nil).Return(nil),
		mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "retry-me").Return(record, nil),
		mockClient.EXPECT().CreateVisit(ctx, record.Payload).Return(models.RemoteVisit{ID: "r-1"}, nil),
		mockRepo.EXPECT().UpdateStatus(gomock.Any(), "retry-me", models.SyncStatusSynced, nil).Return(nil),
		mockRepo.EXPECT().Remove(gomock.Any(), "retry-me").Return(nil),
		mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{}, nil),
	)

	report, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SyncReport{
		Processed:  1,
		Synced:     1,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}, report)
}

func TestVisitSyncService_SyncNow_SubmissionFailureMarksError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	rejected := &adapter.SubmissionError{Op: adapter.OpCreateVisit, Kind: adapter.KindValidation, StatusCode: 400, Message: "plot_id is required"}

	mockRepo.EXPECT().ListPending(ctx).Return([]models.PendingVisitRecord{
		pendingRecord("bad", models.SyncStatusPending),
		pendingRecord("good", models.SyncStatusPending),
	}, nil)

	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "bad", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "bad").Return(pendingRecord("bad", models.SyncStatusSyncing), nil)
	mockClient.EXPECT().CreateVisit(ctx, json.RawMessage(`{"title":"bad"}`)).Return(models.RemoteVisit{}, rejected)

	var stored *string
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "bad", models.SyncStatusError, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.SyncStatus, msg *string) error {
			stored = msg
			return nil
		})

	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "good", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "good").Return(pendingRecord("good", models.SyncStatusSyncing), nil)
	mockClient.EXPECT().CreateVisit(ctx, json.RawMessage(`{"title":"good"}`)).Return(models.RemoteVisit{ID: "r-good"}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "good", models.SyncStatusSynced, nil).Return(nil)
	mockRepo.EXPECT().Remove(gomock.Any(), "good").Return(nil)

	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{Failed: 1, Total: 1}, nil)

	report, err := svc.SyncNow(ctx)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, rejected.Error(), *stored)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Remaining)

	status := svc.Status()
	assert.Equal(t, 1, status.PendingCount)
	require.NotNil(t, status.Error)
	assert.Equal(t, "1 visits failed to sync", *status.Error)
}

func TestVisitSyncService_SyncNow_SecondaryFailuresAreIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	record := pendingRecord("with-extras", models.SyncStatusPending)
	record.GPSCoords = &models.GeoPoint{Latitude: 1, Longitude: 2}
	record.Photos = []models.PendingPhoto{
		{FileName: "a.jpg", Data: []byte("a"), Size: 1},
		{FileName: "b.jpg", Data: []byte("b"), Size: 1},
		{FileName: "c.jpg", Data: []byte("c"), Size: 1},
	}

	// в списке только метаданные, данные фото читаются для одной записи
	listed := record
	listed.Photos = []models.PendingPhoto{{FileName: "a.jpg", Size: 1}, {FileName: "b.jpg", Size: 1}, {FileName: "c.jpg", Size: 1}}

	mockRepo.EXPECT().ListPending(ctx).Return([]models.PendingVisitRecord{listed}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "with-extras", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "with-extras").Return(record, nil)
	mockClient.EXPECT().CreateVisit(ctx, gomock.Any()).Return(models.RemoteVisit{ID: "v-9"}, nil)

	mockClient.EXPECT().CreateGeoPoint(ctx, "v-9", *record.GPSCoords).
		Return(&adapter.SubmissionError{Op: adapter.OpCreateGeoPoint, Kind: adapter.KindTransient, Message: "timeout"})
	mockClient.EXPECT().UploadPhoto(ctx, "v-9", record.Photos[0]).Return(nil)
	mockClient.EXPECT().UploadPhoto(ctx, "v-9", record.Photos[1]).
		DoAndReturn(func(context.Context, string, models.PendingPhoto) error { panic("boom") })
	mockClient.EXPECT().UploadPhoto(ctx, "v-9", record.Photos[2]).Return(nil)

	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "with-extras", models.SyncStatusSynced, nil).Return(nil)
	mockRepo.EXPECT().Remove(gomock.Any(), "with-extras").Return(nil)
	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{}, nil)

	report, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	assert.Zero(t, report.Failed)
}

// ── store failures ───────────────────────────────────────────────────────────

func TestVisitSyncService_SyncNow_ListFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))

	mockRepo.EXPECT().ListPending(gomock.Any()).Return(nil, errDisk)

	_, err := svc.SyncNow(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncAborted)
	assert.ErrorIs(t, err, store.ErrStorage)

	status := svc.Status()
	require.NotNil(t, status.Error)
	assert.Contains(t, *status.Error, "disk I/O error")
	assert.False(t, status.IsSyncing, "running flag is cleared on abort")
}

func TestVisitSyncService_SyncNow_StatusWriteFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))

	mockRepo.EXPECT().ListPending(gomock.Any()).Return([]models.PendingVisitRecord{
		pendingRecord("a", models.SyncStatusPending),
		pendingRecord("b", models.SyncStatusPending),
	}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "a", models.SyncStatusSyncing, nil).Return(errDisk)
	// ни одного удалённого вызова: CreateVisit не ожидается

	_, err := svc.SyncNow(context.Background())
	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestVisitSyncService_SyncNow_ConcurrentStatusChangeSkipsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	mockRepo.EXPECT().ListPending(ctx).Return([]models.PendingVisitRecord{
		pendingRecord("gone", models.SyncStatusPending),
		pendingRecord("next", models.SyncStatusPending),
	}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "gone", models.SyncStatusSyncing, nil).
		Return(store.ErrInvalidStatusTransition)

	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "next", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "next").Return(pendingRecord("next", models.SyncStatusSyncing), nil)
	mockClient.EXPECT().CreateVisit(ctx, gomock.Any()).Return(models.RemoteVisit{ID: "r"}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "next", models.SyncStatusSynced, nil).Return(nil)
	mockRepo.EXPECT().Remove(gomock.Any(), "next").Return(nil)
	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{}, nil)

	report, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
}

func TestVisitSyncService_SyncNow_DiscardedRecordIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx := context.Background()

	// запись удалена пользователем между ListPending и переходом в syncing
	mockRepo.EXPECT().ListPending(ctx).Return([]models.PendingVisitRecord{
		pendingRecord("discarded", models.SyncStatusError),
	}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "discarded", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "discarded").
		Return(models.PendingVisitRecord{}, fmt.Errorf("%w: discarded", store.ErrRecordNotFound))
	mockClient.EXPECT().CreateVisit(gomock.Any(), gomock.Any()).Times(0)
	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{}, nil)

	report, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Processed)
	assert.Zero(t, report.Synced)
}

func TestVisitSyncService_SyncNow_PhotoLoadFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))

	mockRepo.EXPECT().ListPending(gomock.Any()).Return([]models.PendingVisitRecord{
		pendingRecord("a", models.SyncStatusPending),
	}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "a", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "a").Return(models.PendingVisitRecord{}, errDisk)

	_, err := svc.SyncNow(context.Background())
	assert.ErrorIs(t, err, ErrSyncAborted)
	assert.ErrorIs(t, err, store.ErrStorage)
}

// ── cancellation ─────────────────────────────────────────────────────────────

func TestVisitSyncService_SyncNow_CancelStopsBetweenRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, mockClient := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockRepo.EXPECT().ListPending(gomock.Any()).Return([]models.PendingVisitRecord{
		pendingRecord("first", models.SyncStatusPending),
		pendingRecord("second", models.SyncStatusPending),
	}, nil)
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "first", models.SyncStatusSyncing, nil).Return(nil)
	mockRepo.EXPECT().GetWithPhotos(gomock.Any(), "first").Return(pendingRecord("first", models.SyncStatusSyncing), nil)
	mockClient.EXPECT().CreateVisit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ json.RawMessage) (models.RemoteVisit, error) {
			cancel()
			return models.RemoteVisit{}, &adapter.SubmissionError{Op: adapter.OpCreateVisit, Kind: adapter.KindTransient, Message: ctx.Err().Error(), Err: ctx.Err()}
		})

	// запись всё равно уходит в error, а не остаётся в syncing
	mockRepo.EXPECT().UpdateStatus(gomock.Any(), "first", models.SyncStatusError, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ models.SyncStatus, _ *string) error {
			assert.NoError(t, ctx.Err(), "status bookkeeping must not inherit cancellation")
			return nil
		})
	mockRepo.EXPECT().Stats(gomock.Any()).Return(models.PendingStats{Pending: 1, Failed: 1, Total: 2}, nil)

	report, err := svc.SyncNow(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 2, report.Remaining)
}

// ── Start / Refresh ──────────────────────────────────────────────────────────

func TestVisitSyncService_Start_SyncsOnReconnectOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := newFakeConnectivity(false)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, conn)
	ctx := context.Background()

	mockRepo.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(2)

	svc.Start(ctx)
	svc.Start(ctx) // повторный Start ничего не делает

	conn.set(models.ConnectivityState{IsOnline: true, JustReconnected: true})
	svc.Wait()

	// конец окна reconnect: новое событие online без edge
	conn.set(models.ConnectivityState{IsOnline: true})
	svc.Wait()

	conn.set(models.ConnectivityState{IsOnline: false})
	conn.set(models.ConnectivityState{IsOnline: true, JustReconnected: true})
	svc.Wait()
}

func TestVisitSyncService_Start_AlreadyOnlineSyncsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(true))

	mockRepo.EXPECT().ListPending(gomock.Any()).Return(nil, nil).Times(1)

	svc.Start(context.Background())
	svc.Wait()

	assert.NotNil(t, svc.Status().LastSyncTime)
}

func TestVisitSyncService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockRepo, _ := newTestSyncSvc(t, ctrl, newFakeConnectivity(false))
	ctx := context.Background()

	mockRepo.EXPECT().Stats(ctx).Return(models.PendingStats{Pending: 2, Failed: 1, Total: 3}, nil)
	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, 3, svc.Status().PendingCount)

	mockRepo.EXPECT().Stats(ctx).Return(models.PendingStats{}, errDisk)
	err := svc.Refresh(ctx)
	assert.True(t, errors.Is(err, store.ErrStorage))
	assert.Equal(t, 3, svc.Status().PendingCount, "counter kept on failure")
}

func TestVisitSyncService_Status_ReflectsConnectivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := newFakeConnectivity(true)
	svc, _, _ := newTestSyncSvc(t, ctrl, conn)

	conn.set(models.ConnectivityState{IsOnline: true, JustReconnected: true})
	status := svc.Status()
	assert.True(t, status.Online)
	assert.True(t, status.JustReconnected)
	assert.False(t, status.IsSyncing)
}
