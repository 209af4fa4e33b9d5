// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidVisit     = errors.New("invalid visit")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidGPSCoords = errors.New("invalid gps coordinates")
	ErrInvalidPhoto     = errors.New("invalid photo")
	ErrTooManyPhotos    = errors.New("too many photos")
)
