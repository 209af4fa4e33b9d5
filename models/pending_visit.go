// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// PendingVisitRecord is a visit captured on the device that has not been
// confirmed by the remote platform yet.
type PendingVisitRecord struct {
	// LocalID identifies the record until the platform assigns its own id.
	// It is generated once at capture time and never reused.
	LocalID string `json:"local_id"`

	// Payload holds the visit fields exactly as they will be submitted.
	// The sync engine forwards it verbatim and never inspects it.
	Payload json.RawMessage `json:"payload"`

	// GPSCoords is the optional position captured together with the visit.
	GPSCoords *GeoPoint `json:"gps_coords,omitempty"`

	// Photos are submitted after the visit, in order.
	Photos []PendingPhoto `json:"photos,omitempty"`

	SyncStatus SyncStatus `json:"sync_status"`

	// LastError is set only while SyncStatus is SyncStatusError.
	LastError *string `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// GeoPoint is a WGS84 latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PendingPhoto is a photo attached to a pending visit.
type PendingPhoto struct {
	Data     []byte `json:"-"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// PendingStats is a point-in-time count of records still waiting for sync.
// It is eventually consistent with the store and intended for UI badges.
type PendingStats struct {
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}
