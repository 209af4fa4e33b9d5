// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the visit
// sync client. It aggregates all sub-configurations and is populated by
// merging defaults, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings that identify the caller on the hosted platform.
	App App `envPrefix:"APP_"`

	// Storage holds the local record store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the settings of the loopback status API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the hosted platform endpoint and credentials.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Connectivity holds reachability probing settings.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration of the local persistence backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// OrganizationID is the organization scope sent with every record
	// created on the hosted platform.
	// Env: APP_ORGANIZATION_ID
	OrganizationID string `env:"ORGANIZATION_ID"`

	// HashKey is the HMAC key used for the HashSHA256 request integrity
	// header. Optional; the header is omitted when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network settings of the loopback status API.
type Server struct {
	// HTTPAddress is the TCP address on which the status API listens,
	// in "host:port" format (e.g. "127.0.0.1:8787").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN is the SQLite data source name, usually a file path
	// (e.g. "file:visits.db?_foreign_keys=on").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the hosted platform settings used by the submission client.
type Adapter struct {
	// HTTPAddress is the base URL of the hosted platform
	// (e.g. "https://project.example.co").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// APIKey is the public (anon) key sent in the apikey header.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// AccessToken is the caller's bearer token. Its "sub" claim is used as
	// created_by on submitted visits.
	// Env: ADAPTER_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// PhotoBucket is the storage bucket photos are uploaded into.
	// Env: ADAPTER_PHOTO_BUCKET
	PhotoBucket string `env:"PHOTO_BUCKET"`

	// HealthPath is requested by the reachability probe.
	// Env: ADAPTER_HEALTH_PATH
	HealthPath string `env:"HEALTH_PATH"`

	// RequestTimeout is the per-request timeout of outbound calls.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Connectivity holds settings of the reachability monitor.
type Connectivity struct {
	// ProbeInterval is the delay between two reachability probes.
	// Env: CONNECTIVITY_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ReconnectWindow is how long the "just reconnected" signal stays up
	// after an offline to online transition.
	// Env: CONNECTIVITY_RECONNECT_WINDOW
	ReconnectWindow time.Duration `env:"RECONNECT_WINDOW"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncInterval is the period of the retry job. Zero disables it and
	// leaves reconnection and manual triggers only.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Default values applied before any other source.
const (
	DefaultServerAddress   = "127.0.0.1:8787"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultPhotoBucket     = "visit-photos"
	DefaultHealthPath      = "/rest/v1/"
	DefaultProbeInterval   = 10 * time.Second
	DefaultReconnectWindow = 5 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			PhotoBucket:    DefaultPhotoBucket,
			HealthPath:     DefaultHealthPath,
			RequestTimeout: DefaultRequestTimeout,
		},
		Connectivity: Connectivity{
			ProbeInterval:   DefaultProbeInterval,
			ReconnectWindow: DefaultReconnectWindow,
		},
	}
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  0. Defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
