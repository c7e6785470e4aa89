// Package ratelimit provides per-key request limiting for the reference
// server.
package ratelimit

import (
	"time"

	rate "github.com/wallstreetcn/rate/redis"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Nop allows everything.
type Nop struct{}

// Allow always returns true.
func (Nop) Allow(string) bool { return true }

// Setup points the Redis-backed limiters at a Redis server. It must be
// called once before any Redis limiter is used; the rate library keeps a
// single global connection separate from the paste store's.
func Setup(host string, port int, auth string) error {
	return rate.SetRedis(&rate.ConfigRedis{
		Host: host,
		Port: port,
		Auth: auth,
	})
}

// Redis is a token bucket limiter shared across server instances through Redis.
type Redis struct {
	prefix string
	every  time.Duration
	burst  int
}

// NewRedis allows burst requests and then one request per every, per key.
// Keys are namespaced with prefix.
func NewRedis(prefix string, every time.Duration, burst int) *Redis {
	return &Redis{prefix: prefix, every: every, burst: burst}
}

// Allow reports whether key has a token left, consuming it if so.
func (r *Redis) Allow(key string) bool {
	return rate.NewLimiter(rate.Every(r.every), r.burst, r.prefix+key).Allow()
}
