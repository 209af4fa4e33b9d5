// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tracks whether the hosted platform is reachable.
//
// A [Monitor] polls a [Prober] on a fixed interval and reports edges to its
// subscribers. After every offline to online edge the state carries
// JustReconnected for a short window so the UI can show a "back online" hint.
package connectivity
