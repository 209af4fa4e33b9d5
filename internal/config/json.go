// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and string
// durations.
type StructuredJSONConfig struct {
	App struct {
		OrganizationID string `json:"organization_id"`
		HashKey        string `json:"hash_key"`
		Version        string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		APIKey         string   `json:"api_key"`
		AccessToken    string   `json:"access_token"`
		PhotoBucket    string   `json:"photo_bucket"`
		HealthPath     string   `json:"health_path"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Connectivity struct {
		ProbeInterval   Duration `json:"probe_interval"`
		ReconnectWindow Duration `json:"reconnect_window"`
	} `json:"connectivity,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			OrganizationID: jsonCfg.App.OrganizationID,
			HashKey:        jsonCfg.App.HashKey,
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			APIKey:         jsonCfg.Adapter.APIKey,
			AccessToken:    jsonCfg.Adapter.AccessToken,
			PhotoBucket:    jsonCfg.Adapter.PhotoBucket,
			HealthPath:     jsonCfg.Adapter.HealthPath,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Connectivity: Connectivity{
			ProbeInterval:   time.Duration(jsonCfg.Connectivity.ProbeInterval),
			ReconnectWindow: time.Duration(jsonCfg.Connectivity.ReconnectWindow),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
