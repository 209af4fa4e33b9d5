// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/store"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
	"github.com/MKhiriev/go-visit-sync/internal/validators"
	"github.com/MKhiriev/go-visit-sync/models"
)

// pendingCounter is notified after every change of the stored record set.
type pendingCounter interface {
	Refresh(ctx context.Context) error
}

type visitCaptureService struct {
	store     store.LocalVisitRepository
	validator validators.Validator
	ids       *utils.LocalIDGenerator
	counter   pendingCounter
	now       func() time.Time

	logger *logger.Logger
}

func NewVisitCaptureService(storages *store.ClientStorages, counter pendingCounter, logger *logger.Logger) VisitCaptureService {
	return &visitCaptureService{
		store:     storages.VisitRepository,
		validator: validators.NewVisitValidator(),
		ids:       utils.NewLocalIDGenerator(),
		counter:   counter,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *visitCaptureService) Capture(ctx context.Context, req models.VisitCaptureRequest) (models.VisitCaptureResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.VisitCaptureResponse{}, fmt.Errorf("%w: %w", ErrInvalidVisit, err)
	}

	payload, err := json.Marshal(req.Visit)
	if err != nil {
		return models.VisitCaptureResponse{}, fmt.Errorf("%w: encode payload: %w", ErrInvalidVisit, err)
	}

	record := models.PendingVisitRecord{
		LocalID:    s.ids.Generate(),
		Payload:    payload,
		GPSCoords:  req.GPSCoords,
		Photos:     make([]models.PendingPhoto, 0, len(req.Photos)),
		SyncStatus: models.SyncStatusPending,
		CreatedAt:  s.now().UTC(),
	}
	for _, p := range req.Photos {
		record.Photos = append(record.Photos, models.PendingPhoto{
			Data:     p.Data,
			FileName: p.FileName,
			Size:     int64(len(p.Data)),
		})
	}

	if err = s.store.Save(ctx, record); err != nil {
		return models.VisitCaptureResponse{}, fmt.Errorf("save captured visit: %w", err)
	}

	s.logger.Info().
		Str("func", "visitCaptureService.Capture").
		Str("local_id", record.LocalID).
		Int("photos", len(record.Photos)).
		Bool("gps", record.GPSCoords != nil).
		Msg("visit captured offline")

	s.refresh(ctx)

	return models.VisitCaptureResponse{
		LocalID:   record.LocalID,
		Status:    record.SyncStatus,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *visitCaptureService) ListPending(ctx context.Context) ([]models.PendingVisitView, error) {
	records, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending visits: %w", err)
	}

	views := make([]models.PendingVisitView, 0, len(records))
	for _, r := range records {
		views = append(views, models.NewPendingVisitView(r))
	}
	return views, nil
}

func (s *visitCaptureService) Get(ctx context.Context, localID string) (models.PendingVisitView, error) {
	record, err := s.store.Get(ctx, localID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.PendingVisitView{}, ErrVisitNotFound
	}
	if err != nil {
		return models.PendingVisitView{}, fmt.Errorf("get pending visit: %w", err)
	}
	return models.NewPendingVisitView(record), nil
}

func (s *visitCaptureService) Discard(ctx context.Context, localID string) error {
	err := s.store.Discard(ctx, localID)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return ErrVisitNotFound
	case errors.Is(err, store.ErrRecordBeingSynced):
		return ErrVisitBeingSynced
	case err != nil:
		return fmt.Errorf("discard pending visit: %w", err)
	}

	s.logger.Info().
		Str("func", "visitCaptureService.Discard").
		Str("local_id", localID).
		Msg("pending visit discarded by user")

	s.refresh(ctx)
	return nil
}

func (s *visitCaptureService) RecoverInterrupted(ctx context.Context) (int64, error) {
	n, err := s.store.RecoverInterrupted(ctx)
	if err != nil {
		return 0, fmt.Errorf("recover interrupted visits: %w", err)
	}
	if n > 0 {
		s.logger.Warn().
			Str("func", "visitCaptureService.RecoverInterrupted").
			Int64("records", n).
			Msg("visits left in syncing by a previous run were moved to error")
	}

	s.refresh(ctx)
	return n, nil
}

func (s *visitCaptureService) refresh(ctx context.Context) {
	if s.counter == nil {
		return
	}
	if err := s.counter.Refresh(ctx); err != nil {
		s.logger.Err(err).Str("func", "visitCaptureService.refresh").Msg("failed to refresh pending counter")
	}
}
