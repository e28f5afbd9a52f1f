// Package ratelimit provides the per-IP click throttle used by the
// affiliate tracker. The throttle is advisory: it minimizes the
// check-then-insert race window but does not guarantee hard exclusion
// across processes.
package ratelimit

import "context"

// Throttle limits how often a source may register a click
type Throttle interface {
	// Allow reports whether the source may click now, and marks the
	// source as having clicked when it may.
	Allow(ctx context.Context, source string) (bool, error)
}
