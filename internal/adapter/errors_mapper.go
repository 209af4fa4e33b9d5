// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const maxErrorMessageLen = 512

// mapHTTPError converts a non-2xx response into a *SubmissionError.
// 408 and 429 are transient like every 5xx; the remaining 4xx codes mean the
// platform rejected the request. A 2xx response maps to nil.
func mapHTTPError(op string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	kind := KindTransient
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError &&
		code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		kind = KindValidation
	}

	return &SubmissionError{
		Op:         op,
		Kind:       kind,
		StatusCode: code,
		Message:    errorMessage(resp),
	}
}

// mapTransportError converts an error returned by resty before any response
// was read (DNS, refused connection, timeout, cancelled context).
func mapTransportError(op string, err error) error {
	return &SubmissionError{
		Op:      op,
		Kind:    KindTransient,
		Message: err.Error(),
		Err:     err,
	}
}

// errorMessage extracts the "message" field of a PostgREST or storage error
// body and falls back to the raw body or the status text.
func errorMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if body != "" && json.Unmarshal([]byte(body), &structured) == nil {
		switch {
		case structured.Message != "" && structured.Details != "":
			body = structured.Message + ": " + structured.Details
		case structured.Message != "":
			body = structured.Message
		case structured.Error != "":
			body = structured.Error
		}
	}

	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return truncateMessage(body, maxErrorMessageLen)
}

// truncateMessage cuts s to at most limit bytes on a rune boundary.
func truncateMessage(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
