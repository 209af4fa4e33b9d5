// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/utils"
)

// HTTPProber checks whether the hosted platform can be reached. Any HTTP
// response counts as reachable, whatever its status: only a transport failure
// means the device is offline.
type HTTPProber struct {
	client *utils.HTTPClient
	path   string
	apiKey string
}

// NewHTTPProber builds a prober for adapterCfg.HealthPath on the platform.
func NewHTTPProber(adapterCfg config.ClientAdapter) (*HTTPProber, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	probePath := adapterCfg.HealthPath
	if probePath == "" {
		probePath = config.DefaultHealthPath
	}

	return &HTTPProber{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		path:   probePath,
		apiKey: adapterCfg.APIKey,
	}, nil
}

// Probe returns nil when the platform answered.
func (p *HTTPProber) Probe(ctx context.Context) error {
	_, err := p.client.R().
		SetContext(ctx).
		SetHeader("apikey", p.apiKey).
		Get(p.path)
	if err != nil {
		return fmt.Errorf("platform unreachable: %w", err)
	}
	return nil
}
