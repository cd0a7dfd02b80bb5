// Package redis provides the Redis client and the Redis-backed rate limiter
// used when the service runs with multiple instances.
package redis
