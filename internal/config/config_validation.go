// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of the runtime role. Presence of required values is checked by
// [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.SyncInterval < 0 {
		return fmt.Errorf("%w: negative sync interval", ErrInvalidWorkerConfigs)
	}
	if cfg.Connectivity.ProbeInterval < 0 || cfg.Connectivity.ReconnectWindow < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConnectivityConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	// pending visits must survive restarts, so in-memory databases are refused
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") ||
		strings.Contains(cfg.Storage.DB.DSN, "mode=memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.APIKey == "" ||
		cfg.Adapter.AccessToken == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Connectivity.ProbeInterval <= 0 || cfg.Connectivity.ReconnectWindow <= 0 {
		return ErrInvalidConnectivityConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.OrganizationID == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
