// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
	"github.com/MKhiriev/go-visit-sync/models"
)

const (
	msgSyncAlreadyRunning = "sync already running"
	msgPlatformOffline    = "platform is unreachable"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK)
}

func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// a client hanging up must not cut the cycle short
	ctx := context.WithoutCancel(r.Context())

	report, err := h.services.SyncService.SyncNow(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncNow").Msg("sync cycle failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if report.Skipped {
		log.Info().Str("func", "*Handler.syncNow").Str("reason", string(report.SkipReason)).Msg("sync trigger skipped")
		switch report.SkipReason {
		case models.SkipReasonBusy:
			http.Error(w, msgSyncAlreadyRunning, http.StatusConflict)
		default:
			http.Error(w, msgPlatformOffline, http.StatusServiceUnavailable)
		}
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}
