package client

import "time"

// Config holds the facade's tunables (§6). Defaults match the source: tip
// caching on with a 5-minute idle eviction window, a 10-second per-chain
// daemon-hash TTL, and proof-of-work disabled at 12 bits difficulty.
type Config struct {
	EnableCache    bool
	CacheIdleTTL   time.Duration
	DaemonHashTTL  time.Duration
	EnablePoW      bool
	DifficultyBits uint32
}

// DefaultConfig returns the source's documented defaults (§6).
func DefaultConfig() Config {
	return Config{
		EnableCache:    true,
		CacheIdleTTL:   300 * time.Second,
		DaemonHashTTL:  10 * time.Second,
		EnablePoW:      false,
		DifficultyBits: 12,
	}
}

// Option mutates a Config during New.
type Option func(*Config)

// WithCacheTTL sets the tip cache's idle eviction window. A non-positive d
// is equivalent to WithCache(false).
func WithCacheTTL(d time.Duration) Option {
	return func(c *Config) { c.CacheIdleTTL = d }
}

// WithCache toggles tip caching outright.
func WithCache(enabled bool) Option {
	return func(c *Config) { c.EnableCache = enabled }
}

// WithDaemonHashTTL sets the per-chain daemon-hash cache TTL.
func WithDaemonHashTTL(d time.Duration) Option {
	return func(c *Config) { c.DaemonHashTTL = d }
}

// WithPoW toggles proof-of-work on submitted transactions.
func WithPoW(enabled bool) Option {
	return func(c *Config) { c.EnablePoW = enabled }
}

// WithDifficulty sets the proof-of-work difficulty in bits.
func WithDifficulty(bits uint32) Option {
	return func(c *Config) { c.DifficultyBits = bits }
}
