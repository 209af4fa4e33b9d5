// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/models"
)

// localVisitRepository is the SQLite-backed implementation of
// [LocalVisitRepository]. Visits live in pending_visits, their photos in
// pending_visit_photos keyed by (local_id, position).
type localVisitRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalVisitRepository constructs a [LocalVisitRepository] on db.
func NewLocalVisitRepository(db *DB, logger *logger.Logger) LocalVisitRepository {
	return &localVisitRepository{DB: db, logger: logger}
}

// Save implements [LocalVisitRepository].
func (r *localVisitRepository) Save(ctx context.Context, record models.PendingVisitRecord) error {
	log := logger.FromContext(ctx)

	if record.LocalID == "" || len(record.Payload) == 0 {
		return fmt.Errorf("%w: local id and payload are required", ErrInvalidRecord)
	}
	if record.SyncStatus == "" {
		record.SyncStatus = models.SyncStatusPending
	}
	if !record.SyncStatus.Valid() {
		return fmt.Errorf("%w: unknown sync status %q", ErrInvalidRecord, record.SyncStatus)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	var lat, lon sql.NullFloat64
	if record.GPSCoords != nil {
		lat = sql.NullFloat64{Float64: record.GPSCoords.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: record.GPSCoords.Longitude, Valid: true}
	}

	var lastError *string
	if record.SyncStatus == models.SyncStatusError {
		lastError = record.LastError
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertPendingVisit,
			record.LocalID,
			[]byte(record.Payload),
			lat,
			lon,
			string(record.SyncStatus),
			lastError,
			record.CreatedAt.UnixNano(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrRecordAlreadyExists, record.LocalID)
			}
			return storageError(ErrExecutingStatement, err)
		}

		for i, photo := range record.Photos {
			size := photo.Size
			if size == 0 {
				size = int64(len(photo.Data))
			}
			if _, err = tx.ExecContext(ctx, insertPendingVisitPhoto,
				record.LocalID, i, photo.FileName, size, photo.Data,
			); err != nil {
				return storageError(ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localVisitRepository.Save").
			Str("local_id", record.LocalID).
			Bool("retryable", r.Retryable(err)).
			Msg("failed to save pending visit")
		return err
	}

	log.Debug().
		Str("func", "localVisitRepository.Save").
		Str("local_id", record.LocalID).
		Int("photos", len(record.Photos)).
		Msg("pending visit saved")
	return nil
}

// ListPending implements [LocalVisitRepository].
func (r *localVisitRepository) ListPending(ctx context.Context) ([]models.PendingVisitRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPendingQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	records, err := r.queryVisits(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localVisitRepository.ListPending").Msg("failed to list pending visits")
		return nil, err
	}

	if err = r.attachPhotos(ctx, records, false); err != nil {
		log.Err(err).Str("func", "localVisitRepository.ListPending").Msg("failed to load photos")
		return nil, err
	}

	return records, nil
}

// Get implements [LocalVisitRepository].
func (r *localVisitRepository) Get(ctx context.Context, localID string) (models.PendingVisitRecord, error) {
	return r.get(ctx, localID, false)
}

// GetWithPhotos implements [LocalVisitRepository].
func (r *localVisitRepository) GetWithPhotos(ctx context.Context, localID string) (models.PendingVisitRecord, error) {
	return r.get(ctx, localID, true)
}

func (r *localVisitRepository) get(ctx context.Context, localID string, withData bool) (models.PendingVisitRecord, error) {
	query, args, err := buildGetVisitQuery(localID)
	if err != nil {
		return models.PendingVisitRecord{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	records, err := r.queryVisits(ctx, query, args...)
	if err != nil {
		return models.PendingVisitRecord{}, err
	}
	if len(records) == 0 {
		return models.PendingVisitRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, localID)
	}

	if err = r.attachPhotos(ctx, records, withData); err != nil {
		return models.PendingVisitRecord{}, err
	}
	return records[0], nil
}

// UpdateStatus implements [LocalVisitRepository].
func (r *localVisitRepository) UpdateStatus(ctx context.Context, localID string, status models.SyncStatus, errMsg *string) error {
	log := logger.FromContext(ctx)

	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, status)
	}

	var lastError *string
	if status == models.SyncStatusError {
		msg := ErrMsgUnknown
		if errMsg != nil && *errMsg != "" {
			msg = *errMsg
		}
		lastError = &msg
	}

	query, args, err := buildUpdateStatusQuery(localID, status, lastError)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localVisitRepository.UpdateStatus").
			Str("local_id", localID).
			Str("status", string(status)).
			Bool("retryable", r.Retryable(err)).
			Msg("failed to update sync status")
		return storageError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storageError(ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	// nothing updated: either the record is gone or the transition is illegal
	var current string
	err = r.DB.QueryRowContext(ctx, getSyncStatus, localID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "localVisitRepository.UpdateStatus").
			Str("local_id", localID).
			Str("status", string(status)).
			Msg("pending visit not found, status update skipped")
		return nil
	}
	if err != nil {
		return storageError(ErrScanningRow, err)
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, status)
}

// Remove implements [LocalVisitRepository].
func (r *localVisitRepository) Remove(ctx context.Context, localID string) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deletePendingVisitPhotos, localID); err != nil {
			return storageError(ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, deletePendingVisit, localID); err != nil {
			return storageError(ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localVisitRepository.Remove").
			Str("local_id", localID).
			Msg("failed to remove pending visit")
		return err
	}
	return nil
}

// Discard implements [LocalVisitRepository].
func (r *localVisitRepository) Discard(ctx context.Context, localID string) error {
	query, args, err := buildDiscardQuery(localID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return storageError(ErrExecutingStatement, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return storageError(ErrExecutingStatement, err)
		}

		if affected == 0 {
			var current string
			err = tx.QueryRowContext(ctx, getSyncStatus, localID).Scan(&current)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrRecordNotFound, localID)
			}
			if err != nil {
				return storageError(ErrScanningRow, err)
			}
			return fmt.Errorf("%w: %s", ErrRecordBeingSynced, localID)
		}

		if _, err = tx.ExecContext(ctx, deletePendingVisitPhotos, localID); err != nil {
			return storageError(ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStorage) {
			logger.FromContext(ctx).Err(err).
				Str("func", "localVisitRepository.Discard").
				Str("local_id", localID).
				Msg("failed to discard pending visit")
		}
		return err
	}
	return nil
}

// Stats implements [LocalVisitRepository].
func (r *localVisitRepository) Stats(ctx context.Context) (models.PendingStats, error) {
	query, args, err := buildStatsQuery()
	if err != nil {
		return models.PendingStats{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return models.PendingStats{}, storageError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var stats models.PendingStats
	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return models.PendingStats{}, storageError(ErrScanningRow, err)
		}
		switch models.SyncStatus(status) {
		case models.SyncStatusPending:
			stats.Pending = count
		case models.SyncStatusError:
			stats.Failed = count
		}
	}
	if err = rows.Err(); err != nil {
		return models.PendingStats{}, storageError(ErrScanningRows, err)
	}

	stats.Total = stats.Pending + stats.Failed
	return stats, nil
}

// RecoverInterrupted implements [LocalVisitRepository].
func (r *localVisitRepository) RecoverInterrupted(ctx context.Context) (int64, error) {
	query, args, err := buildRecoverInterruptedQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storageError(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError(ErrExecutingStatement, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Warn().
			Str("func", "localVisitRepository.RecoverInterrupted").
			Int64("records", n).
			Msg("interrupted syncs moved to error")
	}
	return n, nil
}

func (r *localVisitRepository) queryVisits(ctx context.Context, query string, args ...any) ([]models.PendingVisitRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.PendingVisitRecord, 0, 16)
	for rows.Next() {
		var (
			rec       models.PendingVisitRecord
			payload   []byte
			lat, lon  sql.NullFloat64
			status    string
			lastError sql.NullString
			createdAt int64
		)
		if err = rows.Scan(&rec.LocalID, &payload, &lat, &lon, &status, &lastError, &createdAt); err != nil {
			return nil, storageError(ErrScanningRow, err)
		}

		rec.Payload = payload
		rec.SyncStatus = models.SyncStatus(status)
		rec.CreatedAt = time.Unix(0, createdAt)
		if lat.Valid && lon.Valid {
			rec.GPSCoords = &models.GeoPoint{Latitude: lat.Float64, Longitude: lon.Float64}
		}
		if lastError.Valid {
			msg := lastError.String
			rec.LastError = &msg
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError(ErrScanningRows, err)
	}

	return records, nil
}

// attachPhotos fills Photos of records in position order. Data stays nil
// unless withData is set.
func (r *localVisitRepository) attachPhotos(ctx context.Context, records []models.PendingVisitRecord, withData bool) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		ids = append(ids, rec.LocalID)
		index[rec.LocalID] = i
	}

	query, args, err := buildPhotosQuery(ids, withData)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return storageError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			localID  string
			position int
			photo    models.PendingPhoto
		)
		dest := []any{&localID, &position, &photo.FileName, &photo.Size}
		if withData {
			dest = append(dest, &photo.Data)
		}
		if err = rows.Scan(dest...); err != nil {
			return storageError(ErrScanningRow, err)
		}
		if i, ok := index[localID]; ok {
			records[i].Photos = append(records[i].Photos, photo)
		}
	}
	if err = rows.Err(); err != nil {
		return storageError(ErrScanningRows, err)
	}

	return nil
}
