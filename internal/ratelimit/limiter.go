package ratelimit

import "context"

// Limiter answers whether a new request for the given identity key should be
// throttled. The check consumes an admission when it returns false, so
// repeated calls within the window are deliberately not idempotent.
type Limiter interface {
	Limited(ctx context.Context, key string) (bool, error)
}
