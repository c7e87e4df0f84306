package orchestrator

import "sync"

// keyLock serializes work per claim key. Events for the same claimant run
// one at a time in arrival order; events for different claimants are
// unrestricted.
type keyLock struct {
	locks map[string]*sync.Mutex
	mu    sync.RWMutex
}

func newKeyLock() *keyLock {
	return &keyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for a key, creating it on first use. Per-key
// mutexes are never removed; the key space is bounded by the claimant
// population.
func (k *keyLock) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for a key.
func (k *keyLock) Unlock(key string) {
	k.get(key).Unlock()
}

// get returns the mutex for a key with double-checked locking.
func (k *keyLock) get(key string) *sync.Mutex {
	k.mu.RLock()
	m, exists := k.locks[key]
	k.mu.RUnlock()

	if exists {
		return m
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if m, exists := k.locks[key]; exists {
		return m
	}

	m = &sync.Mutex{}
	k.locks[key] = m
	return m
}
