// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

// ErrStorage marks every failure of the local persistence layer itself
// (driver errors, I/O, corruption). Callers match it with [errors.Is] and
// treat it as "the store is unavailable right now".
var ErrStorage = errors.New("local storage error")

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordAlreadyExists is returned by Save when a record with the same
	// local id is already stored.
	ErrRecordAlreadyExists = errors.New("pending visit already exists")

	// ErrRecordNotFound is returned by Get when no record has the requested
	// local id.
	ErrRecordNotFound = errors.New("pending visit was not found")

	// ErrRecordBeingSynced is returned by Discard when the record is in
	// syncing and must not be removed until its cycle finishes.
	ErrRecordBeingSynced = errors.New("pending visit is being synced")

	// ErrInvalidStatusTransition is returned by UpdateStatus when the stored
	// status cannot move to the requested one.
	ErrInvalidStatusTransition = errors.New("invalid sync status transition")

	// ErrInvalidRecord is returned by Save for records that cannot be stored
	// (for example an empty local id).
	ErrInvalidRecord = errors.New("invalid pending visit record")
)

// Low-level database operation errors. They are always wrapped together with
// [ErrStorage].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan pending visit row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan pending visit rows")
)

// storageError wraps a driver error with ErrStorage and the operation kind.
func storageError(kind, err error) error {
	return fmt.Errorf("%w: %w: %w", ErrStorage, kind, err)
}
