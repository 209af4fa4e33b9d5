// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/service"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
)

// Handler serves the local status API on top of the client services.
type Handler struct {
	services *service.ClientServices

	// hasher verifies the integrity header of capture requests. It is nil
	// when no hash key is configured.
	hasher *utils.Hasher

	logger *logger.Logger
}

// NewHandler creates a Handler. A non-empty hashKey enables the integrity
// check on POST /api/visits.
func NewHandler(services *service.ClientServices, hashKey string, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}

	logger.Info().Bool("integrity_check", h.hasher != nil).Msg("http handler created")
	return h
}
