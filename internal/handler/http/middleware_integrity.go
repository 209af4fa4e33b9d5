// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"crypto/hmac"
	"io"
	"net/http"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
)

const hashHeader = "HashSHA256"

// withIntegrity compares the HashSHA256 header with the HMAC of the raw
// request body. It is a pass-through when no hash key is configured.
func (h *Handler) withIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withIntegrity").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		got := r.Header.Get(hashHeader)
		want := h.hasher.HashHex(body)
		if !hmac.Equal([]byte(got), []byte(want)) {
			log.Error().Str("func", "*Handler.withIntegrity").
				Str("hash from request", got).
				Msg("hashes are not equal")
			http.Error(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
