// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is the synchronization state of a locally captured visit.
//
// The only valid transitions are:
//
//	pending -> syncing
//	syncing -> synced | error
//	error   -> syncing
type SyncStatus string

const (
	// SyncStatusPending marks a record that was captured locally and has never
	// been submitted.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusSyncing marks a record whose submission is in flight.
	SyncStatusSyncing SyncStatus = "syncing"

	// SyncStatusSynced marks a record accepted by the remote platform. Synced
	// records are removed from the local store right after the transition.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusError marks a record whose last submission failed. LastError
	// carries the failure message.
	SyncStatusError SyncStatus = "error"
)

// AllSyncStatuses lists every known status in lifecycle order.
var AllSyncStatuses = []SyncStatus{SyncStatusPending, SyncStatusSyncing, SyncStatusSynced, SyncStatusError}

var allowedTransitions = map[SyncStatus][]SyncStatus{
	SyncStatusPending: {SyncStatusSyncing},
	SyncStatusSyncing: {SyncStatusSynced, SyncStatusError},
	SyncStatusError:   {SyncStatusSyncing},
}

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusPending, SyncStatusSyncing, SyncStatusSynced, SyncStatusError:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s SyncStatus) CanTransitionTo(next SyncStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PreviousStatuses returns every status from which next can be reached.
// The store uses it to make status updates conditional on the current state.
func PreviousStatuses(next SyncStatus) []SyncStatus {
	var prev []SyncStatus
	for _, from := range AllSyncStatuses {
		if from.CanTransitionTo(next) {
			prev = append(prev, from)
		}
	}
	return prev
}

// AwaitingSync reports whether a record in status s is picked up by the next
// sync cycle.
func (s SyncStatus) AwaitingSync() bool {
	return s == SyncStatusPending || s == SyncStatusError
}
