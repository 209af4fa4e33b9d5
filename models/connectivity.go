// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectivityState is the process-wide view of network reachability.
// It is never persisted.
type ConnectivityState struct {
	IsOnline bool `json:"is_online"`

	// JustReconnected is true for a short fixed window after an
	// offline -> online transition.
	JustReconnected bool `json:"just_reconnected"`
}
