// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
	"github.com/MKhiriev/go-visit-sync/models"
)

// Paths of the hosted platform's REST and storage surfaces.
const (
	visitsPath         = "/rest/v1/visits"
	visitGeoPointsPath = "/rest/v1/visit_geolocations"
	visitPhotosPath    = "/rest/v1/visit_photos"
	storageObjectPath  = "/storage/v1/object"

	hashHeader = "HashSHA256"
)

type httpSubmissionClient struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	apiKey         string
	accessToken    string
	organizationID string
	createdBy      string
	bucket         string

	logger *logger.Logger
}

// NewHTTPSubmissionClient constructs the REST implementation of
// [SubmissionClient]. The caller id used as created_by is read once from the
// access token.
//
// Returns an error if adapterCfg.HTTPAddress is not a valid URL or the token
// carries no subject.
func NewHTTPSubmissionClient(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (SubmissionClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	createdBy, err := utils.ParseSubjectFromJWT(adapterCfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}

	var hasher *utils.Hasher
	if appCfg.HashKey != "" {
		hasher = utils.NewHasher(appCfg.HashKey)
	}

	bucket := adapterCfg.PhotoBucket
	if bucket == "" {
		bucket = config.DefaultPhotoBucket
	}

	return &httpSubmissionClient{
		client:         utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher:         hasher,
		apiKey:         adapterCfg.APIKey,
		accessToken:    strings.TrimSpace(adapterCfg.AccessToken),
		organizationID: appCfg.OrganizationID,
		createdBy:      createdBy,
		bucket:         bucket,
		logger:         logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateVisit implements [SubmissionClient]. The payload object is sent to
// POST /rest/v1/visits with organization_id and created_by merged in; the
// platform answers with the created rows.
func (h *httpSubmissionClient) CreateVisit(ctx context.Context, payload json.RawMessage) (models.RemoteVisit, error) {
	body, err := h.visitBody(payload)
	if err != nil {
		return models.RemoteVisit{}, err
	}

	var created []models.RemoteVisit
	resp, err := h.jsonRequest(ctx, body).
		SetHeader("Prefer", "return=representation").
		SetResult(&created).
		Post(visitsPath)
	if err != nil {
		return models.RemoteVisit{}, mapTransportError(OpCreateVisit, err)
	}
	if err = mapHTTPError(OpCreateVisit, resp); err != nil {
		return models.RemoteVisit{}, err
	}

	if len(created) == 0 || created[0].ID == "" {
		return models.RemoteVisit{}, &SubmissionError{
			Op:         OpCreateVisit,
			Kind:       KindTransient,
			StatusCode: resp.StatusCode(),
			Message:    ErrEmptyResponse.Error(),
			Err:        ErrEmptyResponse,
		}
	}

	h.logger.Debug().
		Str("func", "httpSubmissionClient.CreateVisit").
		Str("visit_id", created[0].ID).
		Msg("visit created on platform")
	return created[0], nil
}

// CreateGeoPoint implements [SubmissionClient] via
// POST /rest/v1/visit_geolocations.
func (h *httpSubmissionClient) CreateGeoPoint(ctx context.Context, visitID string, coords models.GeoPoint) error {
	body, err := json.Marshal(models.RemoteGeoPoint{
		VisitID:        visitID,
		Latitude:       coords.Latitude,
		Longitude:      coords.Longitude,
		OrganizationID: h.organizationID,
	})
	if err != nil {
		return &SubmissionError{Op: OpCreateGeoPoint, Kind: KindValidation, Message: err.Error(), Err: err}
	}

	resp, err := h.jsonRequest(ctx, body).Post(visitGeoPointsPath)
	if err != nil {
		return mapTransportError(OpCreateGeoPoint, err)
	}

	return mapHTTPError(OpCreateGeoPoint, resp)
}

// UploadPhoto implements [SubmissionClient]. The photo bytes go to
// POST /storage/v1/object/{bucket}/{org}/{visitID}/{fileName}, the metadata
// row to POST /rest/v1/visit_photos.
func (h *httpSubmissionClient) UploadPhoto(ctx context.Context, visitID string, photo models.PendingPhoto) error {
	objectPath := path.Join(h.organizationID, visitID, photo.FileName)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", photoContentType(photo.FileName)).
		SetBody(photo.Data).
		Post(storageObjectPath + "/" + escapePath(h.bucket) + "/" + escapePath(objectPath))
	if err != nil {
		return mapTransportError(OpUploadPhoto, err)
	}
	if err = mapHTTPError(OpUploadPhoto, resp); err != nil {
		return err
	}

	size := photo.Size
	if size == 0 {
		size = int64(len(photo.Data))
	}
	body, err := json.Marshal(models.RemotePhoto{
		VisitID:        visitID,
		StoragePath:    objectPath,
		FileName:       photo.FileName,
		SizeBytes:      size,
		OrganizationID: h.organizationID,
	})
	if err != nil {
		return &SubmissionError{Op: OpCreatePhotoRecord, Kind: KindValidation, Message: err.Error(), Err: err}
	}

	resp, err = h.jsonRequest(ctx, body).Post(visitPhotosPath)
	if err != nil {
		return mapTransportError(OpCreatePhotoRecord, err)
	}

	return mapHTTPError(OpCreatePhotoRecord, resp)
}

// visitBody merges the scope fields into the opaque payload object.
func (h *httpSubmissionClient) visitBody(payload json.RawMessage) ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, &SubmissionError{
			Op:      OpCreateVisit,
			Kind:    KindValidation,
			Message: "payload is not a JSON object: " + err.Error(),
			Err:     err,
		}
	}

	org, _ := json.Marshal(h.organizationID)
	createdBy, _ := json.Marshal(h.createdBy)
	fields["organization_id"] = org
	fields["created_by"] = createdBy

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, &SubmissionError{Op: OpCreateVisit, Kind: KindValidation, Message: err.Error(), Err: err}
	}
	return body, nil
}

func (h *httpSubmissionClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("apikey", h.apiKey)
	if h.accessToken != "" {
		req.SetHeader("Authorization", "Bearer "+h.accessToken)
	}
	return req
}

func (h *httpSubmissionClient) jsonRequest(ctx context.Context, body []byte) *resty.Request {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hasher != nil {
		req.SetHeader(hashHeader, h.hasher.HashHex(body))
	}
	return req
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func photoContentType(fileName string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
