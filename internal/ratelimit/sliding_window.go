package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/reviewpulse/reviewpulse/internal/metrics"
)

// SlidingWindow tracks request timestamps per identity key over a trailing
// window. Each check prunes stale timestamps first, then admits iff fewer
// than limit remain; an admission appends the current instant. The pruned
// sequence is written back even on rejection so later checks don't re-scan
// stale entries.
type SlidingWindow struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	window  time.Duration
	limit   int
	entries map[string][]time.Time
}

// NewSlidingWindow creates an in-memory limiter admitting limit requests per
// key per window.
func NewSlidingWindow(limit int, window time.Duration, clock clockwork.Clock) *SlidingWindow {
	return &SlidingWindow{
		clock:   clock,
		window:  window,
		limit:   limit,
		entries: make(map[string][]time.Time),
	}
}

// Limited reports whether a request for key must be throttled, consuming one
// admission when it is not. The window for a key is created lazily on first
// use. Never returns an error.
func (s *SlidingWindow) Limited(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	cutoff := now.Add(-s.window)

	timestamps := s.entries[key]
	recent := timestamps[:0]
	for _, t := range timestamps {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= s.limit {
		s.entries[key] = recent
		metrics.RateLimitDecisions.WithLabelValues("rejected").Inc()
		return true, nil
	}

	s.entries[key] = append(recent, now)
	metrics.RateLimitDecisions.WithLabelValues("admitted").Inc()
	return false, nil
}

// Size returns the number of identity keys currently tracked.
func (s *SlidingWindow) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EvictIdle removes keys whose every timestamp has aged out of the window and
// returns the count evicted. This bounds memory growth in long-running
// processes where the key space keeps churning.
func (s *SlidingWindow) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-s.window)
	evicted := 0

	for key, timestamps := range s.entries {
		idle := true
		for _, t := range timestamps {
			if t.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(s.entries, key)
			evicted++
		}
	}

	return evicted
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// idle keys. Returns a stop function that should be called to clean up the
// goroutine.
func (s *SlidingWindow) StartEvictionTimer(interval time.Duration) func() {
	ticker := s.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := s.EvictIdle()
				if evicted > 0 {
					slog.Debug("Evicted idle rate limit keys",
						"count", evicted,
						"remaining", s.Size(),
					)
					metrics.RateLimitEvictions.Add(float64(evicted))
				}
				metrics.RateLimitTrackedKeys.Set(float64(s.Size()))

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
