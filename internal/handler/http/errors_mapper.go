// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-visit-sync/internal/service"
	"github.com/MKhiriev/go-visit-sync/internal/store"
)

// errorStatusList is checked in order, so more specific errors come first.
var errorStatusList = []struct {
	target error
	status int
}{
	{ErrEmptyLocalID, http.StatusBadRequest},
	{service.ErrInvalidVisit, http.StatusBadRequest},
	{service.ErrVisitNotFound, http.StatusNotFound},
	{service.ErrVisitBeingSynced, http.StatusConflict},
	{store.ErrRecordAlreadyExists, http.StatusConflict},
	{service.ErrSyncAborted, http.StatusInternalServerError},
	{store.ErrStorage, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusList {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
