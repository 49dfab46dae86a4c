// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache stores short-lived serialized values such as the tally map.

# Implementations

MemoryCache keeps entries in process and runs a janitor goroutine that
drops expired entries; Close stops it:

	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()

RedisCache shares entries between instances:

	c, err := cache.NewRedisCache(ctx, "redis://localhost:6379/0", "project51:")

# Misses

Get returns ErrMiss for absent or expired keys. Any other error means the
backend is unavailable; callers treat that as a miss and recompute.
*/
package cache
