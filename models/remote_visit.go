// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RemoteVisit is the platform's answer to a visit creation.
type RemoteVisit struct {
	ID string `json:"id"`
}

// RemoteGeoPoint is the body of a geolocation entry linked to a visit.
type RemoteGeoPoint struct {
	VisitID        string  `json:"visit_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	OrganizationID string  `json:"organization_id"`
}

// RemotePhoto is the metadata row stored for an uploaded photo.
type RemotePhoto struct {
	VisitID        string `json:"visit_id"`
	StoragePath    string `json:"storage_path"`
	FileName       string `json:"file_name"`
	SizeBytes      int64  `json:"size_bytes"`
	OrganizationID string `json:"organization_id"`
}
