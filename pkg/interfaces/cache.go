package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the contract used to memoize expensive read paths such as
// the dashboard statistics snapshot. Entries carry an explicit TTL and can be
// invalidated when the underlying data changes.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
