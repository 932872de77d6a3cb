package ports

// RateLimiter gates requests per client key. Allow must be evaluated before
// any storage access and must never block on I/O.
type RateLimiter interface {
	Allow(key string) bool
}
