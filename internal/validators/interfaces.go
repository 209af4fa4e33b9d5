// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks captured input before it reaches the local store.
//
// A [Validator] accepts a value and an optional list of field names; when
// names are given only those parts are checked. Rules are expressed with
// ozzo-validation and failures are returned wrapped in the package sentinels,
// so callers can use errors.Is without depending on the rule library.
package validators

import "context"

// Validator validates arbitrary input values, optionally restricted to the
// named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
