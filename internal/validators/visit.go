// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MKhiriev/go-visit-sync/models"
)

// Field names accepted by VisitValidator.Validate for a
// models.VisitCaptureRequest.
const (
	FieldVisit     = "visit"
	FieldGPSCoords = "gps_coords"
	FieldPhotos    = "photos"
)

// Capture limits.
const (
	MaxRefLength      = 64
	MaxTitleLength    = 200
	MaxTextLength     = 4000
	MaxShortText      = 100
	MaxPhotos         = 20
	MaxPhotoSize      = 10 << 20
	MaxFileNameLength = 255

	MinTemperature = -60.0
	MaxTemperature = 70.0

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	visitTypes    = toAny(models.AllowedVisitTypes)
	visitStatuses = toAny(models.AllowedVisitStatuses)
)

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type VisitValidator struct{}

func NewVisitValidator() Validator {
	return &VisitValidator{}
}

func (v *VisitValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VisitCaptureRequest:
		return v.validateCaptureRequest(ctx, value, fields...)
	case *models.VisitCaptureRequest:
		return v.validateCaptureRequest(ctx, *value, fields...)

	case models.VisitPayload:
		return v.validatePayload(value)
	case *models.VisitPayload:
		return v.validatePayload(*value)

	case models.GeoPoint:
		return v.validateGeoPoint(value)
	case *models.GeoPoint:
		return v.validateGeoPoint(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *VisitValidator) validateCaptureRequest(_ context.Context, req models.VisitCaptureRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVisit, FieldGPSCoords, FieldPhotos}
	}

	for _, f := range fields {
		switch f {
		case FieldVisit:
			if err := v.validatePayload(req.Visit); err != nil {
				return err
			}
		case FieldGPSCoords:
			if req.GPSCoords == nil {
				continue
			}
			if err := v.validateGeoPoint(*req.GPSCoords); err != nil {
				return err
			}
		case FieldPhotos:
			if err := v.validatePhotos(req.Photos); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VisitValidator) validatePayload(p models.VisitPayload) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.ClientID, validation.Required, validation.Length(1, MaxRefLength)),
		validation.Field(&p.FarmID, validation.Required, validation.Length(1, MaxRefLength)),
		validation.Field(&p.PlotID, validation.Required, validation.Length(1, MaxRefLength)),
		validation.Field(&p.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&p.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&p.StartTime, validation.Date(timeLayout)),
		validation.Field(&p.EndTime, validation.Date(timeLayout)),
		validation.Field(&p.VisitType, validation.Required, validation.In(visitTypes...)),
		validation.Field(&p.Status, validation.Required, validation.In(visitStatuses...)),
		validation.Field(&p.Objective, validation.Length(0, MaxTextLength)),
		validation.Field(&p.Observations, validation.Length(0, MaxTextLength)),
		validation.Field(&p.Recommendations, validation.Length(0, MaxTextLength)),
		validation.Field(&p.Climate, validation.Length(0, MaxShortText)),
		validation.Field(&p.Temperature, validation.Min(MinTemperature), validation.Max(MaxTemperature)),
		validation.Field(&p.Crop, validation.Length(0, MaxShortText)),
		validation.Field(&p.CropVariety, validation.Length(0, MaxShortText)),
		validation.Field(&p.PhenologyStage, validation.Length(0, MaxShortText)),
		validation.Field(&p.Season, validation.Length(0, MaxShortText)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVisit, err)
	}

	if p.StartTime != "" && p.EndTime != "" {
		start, _ := time.Parse(timeLayout, p.StartTime)
		end, _ := time.Parse(timeLayout, p.EndTime)
		if !end.After(start) {
			return fmt.Errorf("%w: %w", ErrInvalidVisit, ErrInvalidTimeRange)
		}
	}

	return nil
}

func (v *VisitValidator) validateGeoPoint(g models.GeoPoint) error {
	err := validation.ValidateStruct(&g,
		validation.Field(&g.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&g.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGPSCoords, err)
	}
	return nil
}

func (v *VisitValidator) validatePhotos(photos []models.PhotoUpload) error {
	if len(photos) > MaxPhotos {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPhotos, len(photos), MaxPhotos)
	}

	for i := range photos {
		p := photos[i]
		err := validation.ValidateStruct(&p,
			validation.Field(&p.FileName, validation.Required, validation.Length(1, MaxFileNameLength)),
			validation.Field(&p.Data, validation.Required, validation.Length(1, MaxPhotoSize)),
		)
		if err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidPhoto, i, err)
		}
	}

	return nil
}
