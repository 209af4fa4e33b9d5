// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZipRequest transparently decompresses request bodies sent with
// "Content-Encoding: gzip". Capture requests carry base64 photos and are
// usually compressed by the capture UI.
func withGZipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipReaderPool.Get().(*gzip.Reader)
		if err := gz.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gz)
			http.Error(w, "Invalid gzip data", http.StatusBadRequest)
			return
		}
		defer func() {
			gz.Close()
			gzipReaderPool.Put(gz)
		}()

		r.Body = io.NopCloser(gz)
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
