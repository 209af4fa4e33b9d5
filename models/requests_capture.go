// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// VisitCaptureRequest is the body of POST /api/visits on the local status API.
type VisitCaptureRequest struct {
	Visit     VisitPayload  `json:"visit"`
	GPSCoords *GeoPoint     `json:"gps_coords,omitempty"`
	Photos    []PhotoUpload `json:"photos,omitempty"`
}

// PhotoUpload carries a photo inside a JSON request. Data is base64 encoded by
// encoding/json because it is a byte slice.
type PhotoUpload struct {
	FileName string `json:"file_name"`
	Data     []byte `json:"data"`
}

// VisitCaptureResponse is returned after a visit was stored locally.
type VisitCaptureResponse struct {
	LocalID   string     `json:"local_id"`
	Status    SyncStatus `json:"sync_status"`
	CreatedAt time.Time  `json:"created_at"`
}

// PendingVisitView is a pending record without photo bytes, used for listings.
type PendingVisitView struct {
	LocalID    string             `json:"local_id"`
	SyncStatus SyncStatus         `json:"sync_status"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	GPSCoords  *GeoPoint          `json:"gps_coords,omitempty"`
	Photos     []PendingPhotoView `json:"photos,omitempty"`
	Payload    json.RawMessage    `json:"payload"`
}

// PendingPhotoView describes an attached photo without its content.
type PendingPhotoView struct {
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// NewPendingVisitView strips photo content from r.
func NewPendingVisitView(r PendingVisitRecord) PendingVisitView {
	view := PendingVisitView{
		LocalID:    r.LocalID,
		SyncStatus: r.SyncStatus,
		LastError:  r.LastError,
		CreatedAt:  r.CreatedAt,
		GPSCoords:  r.GPSCoords,
		Payload:    r.Payload,
	}
	for _, p := range r.Photos {
		view.Photos = append(view.Photos, PendingPhotoView{FileName: p.FileName, Size: p.Size})
	}
	return view
}
