// Package counter provides a shared counter under three increment
// disciplines: unsynchronized, atomic, and mutual exclusion. The point
// is to observe what each discipline guarantees under concurrent use,
// so the implementations stay as close to the raw primitives as
// possible.
package counter

import (
	"sync"
	"sync/atomic"
)

// Counter is a shared counter mutated by many goroutines at once.
type Counter interface {
	Inc()
	Value() int64
}

// Racy increments with a plain read-modify-write and no
// synchronization. Under concurrent use increments interleave and get
// lost: the final value is nondeterministically <= the number of Inc
// calls. Value is only meaningful after all writers have joined.
type Racy struct {
	n int64
}

func (c *Racy) Inc()         { c.n++ }
func (c *Racy) Value() int64 { return c.n }

// Atomic increments with a single indivisible instruction; the final
// value equals the number of Inc calls regardless of scheduling.
type Atomic struct {
	n atomic.Int64
}

func (c *Atomic) Inc()         { c.n.Add(1) }
func (c *Atomic) Value() int64 { return c.n.Load() }

// Mutexed serializes increments behind a mutex. Exact like Atomic, but
// slower under contention because of lock acquisition.
type Mutexed struct {
	mu sync.Mutex
	n  int64
}

func (c *Mutexed) Inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *Mutexed) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
