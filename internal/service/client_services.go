// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-visit-sync/internal/adapter"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/store"
	"github.com/MKhiriev/go-visit-sync/models"
)

type ClientServices struct {
	SyncService    VisitSyncService
	CaptureService VisitCaptureService
	SyncJob        SyncJob
	AppInfoService AppInfoService
}

func NewClientServices(storages *store.ClientStorages, client adapter.SubmissionClient, conn ConnectivitySource, buildInfo models.AppBuildInfo, logger *logger.Logger) (*ClientServices, error) {
	appInfoSvc, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	syncSvc := NewVisitSyncService(storages, client, conn, logger.WithComponent("sync"))

	return &ClientServices{
		SyncService:    syncSvc,
		CaptureService: NewVisitCaptureService(storages, syncSvc, logger.WithComponent("capture")),
		SyncJob:        NewClientSyncJob(syncSvc, logger.WithComponent("sync_job")),
		AppInfoService: appInfoSvc,
	}, nil
}
