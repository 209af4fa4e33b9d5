// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-visit-sync/internal/utils"
	"github.com/MKhiriev/go-visit-sync/models"
)

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.NewAppVersionResponse(info), http.StatusOK)
}
