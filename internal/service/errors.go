// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidVisit          = errors.New("invalid visit data provided")
	ErrVisitNotFound         = errors.New("pending visit not found")
	ErrVisitBeingSynced      = errors.New("visit is being synced")
	ErrSyncAborted           = errors.New("sync cycle aborted")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
