// Package diagnostics provides a bounded, purely observational view of
// the accounts the engine has most recently touched. It plays no part
// in transaction processing: an operator inspecting a running batch (or
// a future interactive front end) can ask it "what does this account
// look like right now" without taking a lock on the engine's own
// per-shard state.
package diagnostics

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/txengine/internal/engine"
)

const defaultSize = 1024

// AccountCache holds the most recently touched AccountRecords, evicting
// least-recently-used entries once it's full.
type AccountCache struct {
	mu sync.RWMutex

	cache *lru.Cache[engine.ClientId, engine.AccountRecord]

	hits   uint64
	misses uint64
}

// NewAccountCache creates a cache holding up to size entries. size <= 0
// is coerced to a built-in default.
func NewAccountCache(size int) (*AccountCache, error) {
	if size <= 0 {
		size = defaultSize
	}
	c, err := lru.New[engine.ClientId, engine.AccountRecord](size)
	if err != nil {
		return nil, err
	}
	return &AccountCache{cache: c}, nil
}

// Touch records the latest known snapshot for a client, overwriting
// whatever was previously cached for it.
func (a *AccountCache) Touch(rec engine.AccountRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache.Add(rec.Client, rec)
}

// Get returns the most recently cached snapshot for a client, if any.
func (a *AccountCache) Get(client engine.ClientId) (engine.AccountRecord, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, found := a.cache.Get(client)
	if found {
		a.hits++
		return rec, true
	}
	a.misses++
	return engine.AccountRecord{}, false
}

// Stats reports cumulative hit/miss counts since creation.
func (a *AccountCache) Stats() (hits, misses uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hits, a.misses
}
