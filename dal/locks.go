package dal

import "sync"

// KeyedMutex serialises operations that share a string key while letting
// operations on different keys run freely. Locks are created on first
// use and discarded once no goroutine holds or waits on them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

// Lock acquires the lock for the given key, blocking until it is free.
func (keyed *KeyedMutex) Lock(key string) {
	keyed.mu.Lock()
	if keyed.locks == nil {
		keyed.locks = make(map[string]*keyLock)
	}
	lock, ok := keyed.locks[key]
	if !ok {
		lock = &keyLock{}
		keyed.locks[key] = lock
	}
	lock.refs++
	keyed.mu.Unlock()

	lock.Lock()
}

// Unlock releases the lock for the given key.
func (keyed *KeyedMutex) Unlock(key string) {
	keyed.mu.Lock()
	lock := keyed.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(keyed.locks, key)
	}
	keyed.mu.Unlock()

	lock.Unlock()
}
