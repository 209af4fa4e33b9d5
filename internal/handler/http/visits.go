// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
	"github.com/MKhiriev/go-visit-sync/models"
)

func (h *Handler) captureVisit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.VisitCaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.captureVisit").Msg("invalid JSON was passed")
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	resp, err := h.services.CaptureService.Capture(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.captureVisit").Msg("failed to capture visit")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("func", "*Handler.captureVisit").Str("local_id", resp.LocalID).Msg("visit captured")
	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) listPendingVisits(w http.ResponseWriter, r *http.Request) {
	views, err := h.services.CaptureService.ListPending(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listPendingVisits").Msg("failed to list pending visits")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if views == nil {
		views = []models.PendingVisitView{}
	}

	utils.WriteJSON(w, views, http.StatusOK)
}

func (h *Handler) getVisit(w http.ResponseWriter, r *http.Request) {
	localID, err := localIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	view, err := h.services.CaptureService.Get(r.Context(), localID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getVisit").Str("local_id", localID).Msg("failed to get visit")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) discardVisit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	localID, err := localIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err = h.services.CaptureService.Discard(r.Context(), localID); err != nil {
		log.Err(err).Str("func", "*Handler.discardVisit").Str("local_id", localID).Msg("failed to discard visit")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("func", "*Handler.discardVisit").Str("local_id", localID).Msg("visit discarded")
	w.WriteHeader(http.StatusNoContent)
}

func localIDParam(r *http.Request) (string, error) {
	localID := strings.TrimSpace(chi.URLParam(r, "localID"))
	if localID == "" {
		return "", ErrEmptyLocalID
	}
	return localID, nil
}
