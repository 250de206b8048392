// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user-supplied manifest entries before they are
// sealed into the manifest. Names end up in a document the storage operator
// never reads, so the rules only guard against entries that would break
// local file systems or the folder tree.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
