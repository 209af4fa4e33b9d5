// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connectivity

import "context"

// Prober performs a single reachability check.
//
// Probe returns nil when the platform answered and an error when it could not
// be reached. Implementations must honour ctx.
type Prober interface {
	Probe(ctx context.Context) error
}
