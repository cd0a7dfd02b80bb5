// Package ratelimit provides per-identity sliding-window admission control.
//
// The in-memory SlidingWindow is used in single-instance mode. The Redis
// implementation in internal/redis enables horizontal scaling by moving the
// window state to a shared, atomically-updated store.
package ratelimit
