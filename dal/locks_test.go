package dal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	var keyed KeyedMutex
	var wg sync.WaitGroup

	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keyed.Lock("menu-1")
			defer keyed.Unlock("menu-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	var keyed KeyedMutex

	// Holding one key must not block another.
	keyed.Lock("menu-1")
	done := make(chan struct{})
	go func() {
		keyed.Lock("menu-2")
		keyed.Unlock("menu-2")
		close(done)
	}()
	<-done
	keyed.Unlock("menu-1")
}

func TestKeyedMutexDiscardsIdleLocks(t *testing.T) {
	var keyed KeyedMutex

	keyed.Lock("menu-1")
	keyed.Unlock("menu-1")

	keyed.mu.Lock()
	defer keyed.mu.Unlock()
	assert.Empty(t, keyed.locks)
}
