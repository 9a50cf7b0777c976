//go:build !linux

package mpdb

import (
	"sync"
	"sync/atomic"
)

// Non-Linux builds have no futex syscall; the consumer's sleep/wake is
// backed by a sync.Cond instead. The poll_wait word in the mapped header is
// still maintained byte-for-byte for ABI parity, but the actual blocking
// uses this process-local condition variable keyed by queue instance.
var wakeMu sync.Mutex
var wakeConds = map[*uint32]*sync.Cond{}

func condFor(addr *uint32) *sync.Cond {
	wakeMu.Lock()
	defer wakeMu.Unlock()
	c, ok := wakeConds[addr]
	if !ok {
		c = sync.NewCond(&sync.Mutex{})
		wakeConds[addr] = c
	}
	return c
}

func futexWait(addr *uint32, expected uint32) {
	c := condFor(addr)
	c.L.Lock()
	defer c.L.Unlock()
	// Producers clear the word before broadcasting under the same lock, so
	// re-checking here closes the sleep/wake race.
	if atomic.LoadUint32(addr) != expected {
		return
	}
	c.Wait()
}

func futexWake(addr *uint32, n int) {
	c := condFor(addr)
	c.L.Lock()
	c.Broadcast()
	c.L.Unlock()
}
