package validators

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-visit-sync/models"
)

func ptr[T any](v T) *T { return &v }

func validPayload() models.VisitPayload {
	return models.VisitPayload{
		ClientID:     gofakeit.UUID(),
		FarmID:       gofakeit.UUID(),
		PlotID:       gofakeit.UUID(),
		Title:        gofakeit.Sentence(4),
		Date:         "2026-03-14",
		StartTime:    "08:30",
		EndTime:      "10:15",
		VisitType:    models.VisitTypeTechnical,
		Status:       models.VisitStatusCompleted,
		Observations: ptr(gofakeit.Paragraph(1, 2, 10, " ")),
		Temperature:  ptr(21.5),
		Crop:         ptr("coffee"),
	}
}

func validCaptureRequest() models.VisitCaptureRequest {
	return models.VisitCaptureRequest{
		Visit:     validPayload(),
		GPSCoords: &models.GeoPoint{Latitude: -12.05, Longitude: -77.04},
		Photos: []models.PhotoUpload{
			{FileName: "leaf.jpg", Data: []byte("jpeg")},
		},
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewVisitValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("capture request value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validCaptureRequest()))
	})

	t.Run("capture request pointer", func(t *testing.T) {
		req := validCaptureRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("payload pointer", func(t *testing.T) {
		p := validPayload()
		require.NoError(t, v.Validate(ctx, &p))
	})

	t.Run("geo point value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.GeoPoint{Latitude: 1, Longitude: 2}))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validCaptureRequest(), "nope"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// Payload
// ---------------------------------------------------------------------------

func TestValidatePayload(t *testing.T) {
	v := NewVisitValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(p *models.VisitPayload)
		wantErr error
		field   string
	}{
		{name: "minimal", mutate: func(p *models.VisitPayload) {
			*p = models.VisitPayload{
				ClientID: "c", FarmID: "f", PlotID: "p", Title: "t", Date: "2026-01-01",
				VisitType: models.VisitTypeAudit, Status: models.VisitStatusScheduled,
			}
		}},
		{name: "missing client", mutate: func(p *models.VisitPayload) { p.ClientID = "" }, wantErr: ErrInvalidVisit, field: "client_id"},
		{name: "missing plot", mutate: func(p *models.VisitPayload) { p.PlotID = "" }, wantErr: ErrInvalidVisit, field: "plot_id"},
		{name: "missing title", mutate: func(p *models.VisitPayload) { p.Title = "" }, wantErr: ErrInvalidVisit, field: "title"},
		{name: "title too long", mutate: func(p *models.VisitPayload) { p.Title = strings.Repeat("a", MaxTitleLength+1) }, wantErr: ErrInvalidVisit, field: "title"},
		{name: "bad date", mutate: func(p *models.VisitPayload) { p.Date = "14/03/2026" }, wantErr: ErrInvalidVisit, field: "visit_date"},
		{name: "bad start time", mutate: func(p *models.VisitPayload) { p.StartTime = "8h" }, wantErr: ErrInvalidVisit, field: "start_time"},
		{name: "end before start", mutate: func(p *models.VisitPayload) { p.EndTime = "07:00" }, wantErr: ErrInvalidTimeRange},
		{name: "end equals start", mutate: func(p *models.VisitPayload) { p.EndTime = p.StartTime }, wantErr: ErrInvalidTimeRange},
		{name: "only start time", mutate: func(p *models.VisitPayload) { p.EndTime = "" }},
		{name: "unknown visit type", mutate: func(p *models.VisitPayload) { p.VisitType = "picnic" }, wantErr: ErrInvalidVisit, field: "visit_type"},
		{name: "unknown status", mutate: func(p *models.VisitPayload) { p.Status = "done" }, wantErr: ErrInvalidVisit, field: "status"},
		{name: "temperature too low", mutate: func(p *models.VisitPayload) { p.Temperature = ptr(-80.0) }, wantErr: ErrInvalidVisit, field: "temperature"},
		{name: "temperature too high", mutate: func(p *models.VisitPayload) { p.Temperature = ptr(71.0) }, wantErr: ErrInvalidVisit, field: "temperature"},
		{name: "observations too long", mutate: func(p *models.VisitPayload) { p.Observations = ptr(strings.Repeat("x", MaxTextLength+1)) }, wantErr: ErrInvalidVisit, field: "observations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := v.Validate(ctx, p)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.field != "" {
				assert.Contains(t, err.Error(), tt.field)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// GPS and photos
// ---------------------------------------------------------------------------

func TestValidateGeoPoint(t *testing.T) {
	v := NewVisitValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.GeoPoint{Latitude: 90, Longitude: -180}))
	assert.ErrorIs(t, v.Validate(ctx, models.GeoPoint{Latitude: 90.1}), ErrInvalidGPSCoords)
	assert.ErrorIs(t, v.Validate(ctx, models.GeoPoint{Longitude: 181}), ErrInvalidGPSCoords)
}

func TestValidateCaptureRequest_Scoped(t *testing.T) {
	v := NewVisitValidator()
	ctx := context.Background()

	req := validCaptureRequest()
	req.Visit.Title = ""
	req.GPSCoords = &models.GeoPoint{Latitude: 200}

	// только фото: ошибки визита и координат игнорируются
	require.NoError(t, v.Validate(ctx, req, FieldPhotos))
	require.ErrorIs(t, v.Validate(ctx, req, FieldGPSCoords), ErrInvalidGPSCoords)
	require.ErrorIs(t, v.Validate(ctx, req, FieldVisit), ErrInvalidVisit)
}

func TestValidateCaptureRequest_NoCoordsNoPhotos(t *testing.T) {
	req := models.VisitCaptureRequest{Visit: validPayload()}
	require.NoError(t, NewVisitValidator().Validate(context.Background(), req))
}

func TestValidatePhotos(t *testing.T) {
	v := NewVisitValidator()
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		req := validCaptureRequest()
		req.Photos = append(req.Photos, models.PhotoUpload{Data: []byte("x")})

		err := v.Validate(ctx, req, FieldPhotos)
		require.ErrorIs(t, err, ErrInvalidPhoto)
		assert.Contains(t, err.Error(), "index 1")
	})

	t.Run("empty data", func(t *testing.T) {
		req := validCaptureRequest()
		req.Photos[0].Data = nil
		require.ErrorIs(t, v.Validate(ctx, req, FieldPhotos), ErrInvalidPhoto)
	})

	t.Run("too large", func(t *testing.T) {
		req := validCaptureRequest()
		req.Photos[0].Data = bytes.Repeat([]byte{1}, MaxPhotoSize+1)
		require.ErrorIs(t, v.Validate(ctx, req, FieldPhotos), ErrInvalidPhoto)
	})

	t.Run("too many", func(t *testing.T) {
		req := validCaptureRequest()
		req.Photos = make([]models.PhotoUpload, MaxPhotos+1)
		for i := range req.Photos {
			req.Photos[i] = models.PhotoUpload{FileName: gofakeit.Word() + ".jpg", Data: []byte("x")}
		}
		require.ErrorIs(t, v.Validate(ctx, req, FieldPhotos), ErrTooManyPhotos)
	})
}
