package account

import (
	"sync"
	"time"
)

// Tip is the cached account-chain state a build step consumes: height,
// parent hash, and the daemon-chain reference (§3's LatestBlock).
type Tip struct {
	Height     uint64
	Hash       [32]byte
	DaemonHash [32]byte
}

type cacheEntry struct {
	tip      Tip
	lastUsed time.Time
}

// TipCache holds the last-known Tip per account, evicted after idleTTL of
// inactivity (§4.9).
type TipCache struct {
	mu      sync.Mutex
	entries map[Key]*cacheEntry
	idleTTL time.Duration
}

// NewTipCache builds a cache with the given idle eviction window.
func NewTipCache(idleTTL time.Duration) *TipCache {
	return &TipCache{entries: make(map[Key]*cacheEntry), idleTTL: idleTTL}
}

// Get returns the cached tip for k, or ok=false on a miss or idle-expired
// entry.
func (c *TipCache) Get(k Key) (Tip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return Tip{}, false
	}
	if time.Since(e.lastUsed) > c.idleTTL {
		delete(c.entries, k)
		return Tip{}, false
	}
	e.lastUsed = time.Now()
	return e.tip, true
}

// Set stores (or replaces) the cached tip for k.
func (c *TipCache) Set(k Key, tip Tip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = &cacheEntry{tip: tip, lastUsed: time.Now()}
}

// Advance applies a successful submission's effect: height+1, hash replaced
// by the server-returned transaction hash (§4.9 point 2). A miss is a no-op
// — the next resolveTip call will refetch from the RPC.
func (c *TipCache) Advance(k Key, newHash [32]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return
	}
	e.tip.Height++
	e.tip.Hash = newHash
	e.lastUsed = time.Now()
}

// Invalidate evicts k's cached tip — used after a failed submission so the
// next attempt refetches from the RPC rather than risk a wedged cache
// (§4.9's state-machine note).
func (c *TipCache) Invalidate(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, k)
}

type daemonEntry struct {
	hash      [32]byte
	fetchedAt time.Time
}

// DaemonHashTable caches the latest daemon-block hash per chain, refreshed
// when its TTL expires (§4.9 point 3). Concurrent accounts on the same
// chain share one TTL clock.
type DaemonHashTable struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint64]daemonEntry
}

// NewDaemonHashTable builds a table with the given per-chain TTL.
func NewDaemonHashTable(ttl time.Duration) *DaemonHashTable {
	return &DaemonHashTable{ttl: ttl, entries: make(map[uint64]daemonEntry)}
}

// Get returns the cached hash for chainID, or ok=false if absent or expired.
func (d *DaemonHashTable) Get(chainID uint64) ([32]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[chainID]
	if !ok || time.Since(e.fetchedAt) > d.ttl {
		return [32]byte{}, false
	}
	return e.hash, true
}

// Set stores a freshly fetched hash for chainID and resets its TTL clock.
func (d *DaemonHashTable) Set(chainID uint64, hash [32]byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[chainID] = daemonEntry{hash: hash, fetchedAt: time.Now()}
}
