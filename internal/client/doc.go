// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the runtime of the visit sync client.
//
// It recovers records interrupted by a previous run, subscribes the sync
// engine to connectivity changes and runs the background workers, the status
// API and the status board until shutdown.
package client
