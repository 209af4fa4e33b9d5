// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// OrganizationID scopes every record created on the hosted platform.
	OrganizationID string
	// HashKey is the HMAC key used for the request integrity header.
	HashKey string
	// Version is reported by the build info output.
	Version string
}

// ClientAdapter holds settings used by the outbound transport layer.
type ClientAdapter struct {
	HTTPAddress    string
	APIKey         string
	AccessToken    string
	PhotoBucket    string
	HealthPath     string
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientConnectivity contains reachability monitor settings.
type ClientConnectivity struct {
	ProbeInterval   time.Duration
	ReconnectWindow time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the retry job runs. Zero disables it.
	SyncInterval time.Duration
}

// ClientServer contains the loopback status API settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App          ClientApp
	Adapter      ClientAdapter
	Storage      ClientStorage
	Connectivity ClientConnectivity
	Workers      ClientWorkers
	Server       ClientServer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			OrganizationID: cfg.App.OrganizationID,
			HashKey:        cfg.App.HashKey,
			Version:        cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			APIKey:         cfg.Adapter.APIKey,
			AccessToken:    cfg.Adapter.AccessToken,
			PhotoBucket:    cfg.Adapter.PhotoBucket,
			HealthPath:     cfg.Adapter.HealthPath,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Connectivity: ClientConnectivity{
			ProbeInterval:   cfg.Connectivity.ProbeInterval,
			ReconnectWindow: cfg.Connectivity.ReconnectWindow,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}
}
