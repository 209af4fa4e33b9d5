// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the loopback status API of the client.
//
// It binds the listener at construction so that a busy port is reported at
// startup, serves until the run context is cancelled and then shuts the
// HTTP server down gracefully.
package server
