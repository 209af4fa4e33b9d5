// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the status API server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns the first error that is not a regular close.
	RunServer(ctx context.Context) error

	// Shutdown stops the server and releases the listener.
	Shutdown()
}
