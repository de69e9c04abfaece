// Package devcache deduplicates dev-server broadcasts: it remembers the
// hash of the last rendered output sent to viewers so an unchanged
// recompile (e.g. a save that only touches a comment the compiler
// ignores) doesn't trigger a pointless reload. It is deliberately not a
// persistent build cache — xipd recompiles in full on every run.
package devcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache tracks the last-broadcast hash per watched file.
type Cache struct {
	mu     sync.Mutex
	hashes map[string]string
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{hashes: make(map[string]string)}
}

// ShouldBroadcast reports whether output differs from the last output
// recorded for key, recording output's hash as a side effect. The first
// call for a given key always returns true.
func (c *Cache) ShouldBroadcast(key string, output []byte) bool {
	sum := sha256.Sum256(output)
	hash := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hashes[key] == hash {
		return false
	}
	c.hashes[key] = hash
	return true
}

// Forget drops the recorded hash for key, so the next ShouldBroadcast
// call for it unconditionally returns true.
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.hashes, key)
}
