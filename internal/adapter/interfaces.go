// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transport to the hosted visit
// platform.
//
// The primary abstraction is [SubmissionClient], which creates a visit, its
// geolocation entry and its photos through the platform's REST surface. The
// package also ships [HTTPProber], the reachability check used by the
// connectivity monitor.
//
// Every failure of a submission call is a *[SubmissionError]. Callers can use
// [errors.Is] with [ErrValidation] or [ErrTransient] to tell a rejected
// payload from a network or server problem.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-visit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/submission_client_mock.go -package=mock

// SubmissionClient is the remote side of the sync engine.
type SubmissionClient interface {
	// CreateVisit submits payload as a new visit owned by the configured
	// organization and caller. It returns the id the platform assigned.
	CreateVisit(ctx context.Context, payload json.RawMessage) (models.RemoteVisit, error)

	// CreateGeoPoint links coords to an existing remote visit.
	CreateGeoPoint(ctx context.Context, visitID string, coords models.GeoPoint) error

	// UploadPhoto stores photo in the platform's object storage and records
	// its metadata against visitID.
	UploadPhoto(ctx context.Context, visitID string, photo models.PendingPhoto) error
}
