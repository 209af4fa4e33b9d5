// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SkipReason explains why a sync trigger did not start a cycle.
type SkipReason string

const (
	SkipReasonOffline SkipReason = "offline"
	SkipReasonBusy    SkipReason = "busy"
)

// SyncReport summarizes one sync cycle.
type SyncReport struct {
	// Skipped is true when the trigger was dropped by the guard; no record was
	// touched in that case.
	Skipped    bool       `json:"skipped"`
	SkipReason SkipReason `json:"skip_reason,omitempty"`

	Processed int `json:"processed"`
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`

	// Remaining is the pending/error count recomputed after the cycle.
	Remaining int `json:"remaining"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncStatusSnapshot is what the surrounding application renders: a badge
// counter, a busy flag, the last completion time and an aggregate error.
type SyncStatusSnapshot struct {
	PendingCount int        `json:"pending_count"`
	IsSyncing    bool       `json:"is_syncing"`
	LastSyncTime *time.Time `json:"last_sync_time"`
	Error        *string    `json:"error"`

	Online          bool `json:"online"`
	JustReconnected bool `json:"just_reconnected"`
}
