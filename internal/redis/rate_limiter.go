package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

// slidingWindowScript atomically prunes entries older than the window, counts
// what remains, and either rejects (returning 1) or records the new admission
// with a fresh TTL (returning 0). Running the whole check as one script keeps
// concurrent checks for the same key from both slipping under the limit.
// KEYS: [1]=window zset  ARGV: [1]=cutoff_ms, [2]=limit, [3]=now_ms, [4]=member, [5]=ttl_ms
var slidingWindowScript = goredis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, ARGV[1])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[2]) then
	return 1
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 0
`)

// SlidingWindow implements ratelimit.Limiter on a shared Redis store, for
// deployments where per-process window state would let each instance admit a
// full quota of its own.
type SlidingWindow struct {
	rdb    *goredis.Client
	clock  clockwork.Clock
	limit  int
	window time.Duration
}

func NewSlidingWindow(rdb *goredis.Client, clock clockwork.Clock, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		rdb:    rdb,
		clock:  clock,
		limit:  limit,
		window: window,
	}
}

// Limited reports whether a request for key must be throttled. Errors are
// returned to the caller, which decides whether to fail open or closed.
func (s *SlidingWindow) Limited(ctx context.Context, key string) (bool, error) {
	nowMs := s.clock.Now().UnixMilli()
	cutoffMs := nowMs - s.window.Milliseconds()

	result, err := slidingWindowScript.Run(ctx, s.rdb,
		[]string{rateLimitKey(key)},
		cutoffMs,
		s.limit,
		nowMs,
		uuid.NewString(),
		s.window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return result == 1, nil
}

func rateLimitKey(key string) string {
	return "rate_limit:reviews:" + key
}
