// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract for runnable client applications.
type Client interface {
	// Run starts the client application and blocks until ctx is cancelled
	// or the user quits.
	Run(ctx context.Context) error
}

// UI is the foreground part of the client. Run blocks until the user quits
// or ctx is cancelled.
type UI interface {
	Run(ctx context.Context) error
}

// BackgroundServer serves until ctx is cancelled.
type BackgroundServer interface {
	RunServer(ctx context.Context) error
}

// BackgroundWorkers starts loops bound to ctx and waits for them.
type BackgroundWorkers interface {
	Run(ctx context.Context)
	Wait()
}
