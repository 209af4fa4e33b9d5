// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches submission errors where the platform rejected
	// the request itself.
	ErrValidation = errors.New("submission rejected")

	// ErrTransient matches submission errors expected to go away on retry:
	// network failures, timeouts, throttling and server errors.
	ErrTransient = errors.New("submission failed transiently")

	// ErrInvalidAccessToken is returned at construction when the caller id
	// cannot be read from the access token.
	ErrInvalidAccessToken = errors.New("invalid access token")

	// ErrEmptyResponse is the cause of a SubmissionError when the platform
	// answered 2xx without the created row.
	ErrEmptyResponse = errors.New("empty response from platform")
)

// Kind classifies a SubmissionError.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransient  Kind = "transient"
)

// Operation names reported in SubmissionError.Op.
const (
	OpCreateVisit       = "create_visit"
	OpCreateGeoPoint    = "create_geo_point"
	OpUploadPhoto       = "upload_photo"
	OpCreatePhotoRecord = "create_photo_record"
)

// SubmissionError describes a failed call to the hosted platform.
type SubmissionError struct {
	Op   string
	Kind Kind

	// StatusCode is zero when no HTTP response was received.
	StatusCode int

	// Message is the platform's error message or the transport error text.
	Message string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s error (http %d): %s", e.Op, e.Kind, e.StatusCode, e.Message)
}

// Is lets errors.Is match the Kind sentinels.
func (e *SubmissionError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrTransient:
		return e.Kind == KindTransient
	}
	return false
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a SubmissionError of KindValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
