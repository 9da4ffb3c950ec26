package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed keys for a limited time
type IdempotencyStore interface {
	// MarkProcessed records key. It returns false when key was already recorded and
	// has not expired.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget removes key so the next MarkProcessed succeeds again
	Forget(ctx context.Context, key string) error
}
