// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the client:
// HMAC hashing, JSON response writing, the resty client wrapper, access token
// inspection and identifier generation.
package utils
