// Package validators checks request and entry payloads before they reach a
// store. Violations wrap one of the Err* sentinels so callers can tell which
// field was rejected.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are checked,
// see the Field* constants.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
