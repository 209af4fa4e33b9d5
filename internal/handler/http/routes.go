// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the status API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	router.Get("/api/version", h.getAppVersion)

	router.Get("/api/sync/status", h.getSyncStatus)
	router.Post("/api/sync/now", h.syncNow)

	router.Get("/api/visits/pending", h.listPendingVisits)
	router.With(withGZipRequest, h.withIntegrity).Post("/api/visits", h.captureVisit)
	router.Get("/api/visits/{localID}", h.getVisit)
	router.Delete("/api/visits/{localID}", h.discardVisit)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
