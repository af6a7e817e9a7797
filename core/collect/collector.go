// File: core/collect/collector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Collector: owns the published chain, the free list and the handle
// registry. Collect steals everything pending with one atomic exchange
// per structure and drains it as a lazy one-shot sequence.

package collect

import (
	"iter"
	"sync/atomic"

	"github.com/momentics/hioload-collect/api"
)

// Defaults applied by NewWithConfig for zero config fields.
const (
	DefaultBatchCapacity    = 64
	DefaultFreeListCapacity = 256
)

// Config tunes a Collector.
type Config struct {
	// BatchCapacity is the number of values per batch. Larger batches
	// amortize allocation further, at the cost of worst-case staleness
	// of a partially filled batch between collects.
	BatchCapacity int

	// FreeListCapacity bounds how many emptied batches are retained for
	// reuse, rounded up to a power of two. Overflowing batches are left
	// to the GC and counted in Stats.
	FreeListCapacity int
}

// Collector is a lock-free batched stealing collector for values of
// type T. Multiple independent collectors coexist without interference;
// there is no process-wide instance. The zero value is not usable, use
// New or NewWithConfig.
type Collector[T any] struct {
	capacity  int
	published chain[T]
	free      *freeList[T]
	handles   registry[T]
	empty     iter.Seq[T] // cached, see emptySeq

	allocated   atomic.Int64
	recycled    atomic.Int64
	retired     atomic.Int64
	publishes   atomic.Int64
	collects    atomic.Int64
	collected   atomic.Int64
	liveHandles atomic.Int64
}

// New creates a Collector with the given batch capacity and default
// free list size. Panics if batchCapacity is not positive.
func New[T any](batchCapacity int) *Collector[T] {
	if batchCapacity <= 0 {
		panic("collect: batch capacity must be positive")
	}
	return NewWithConfig[T](Config{BatchCapacity: batchCapacity})
}

// NewWithConfig creates a Collector from cfg, applying defaults for
// zero fields. Panics on negative values.
func NewWithConfig[T any](cfg Config) *Collector[T] {
	if cfg.BatchCapacity == 0 {
		cfg.BatchCapacity = DefaultBatchCapacity
	}
	if cfg.FreeListCapacity == 0 {
		cfg.FreeListCapacity = DefaultFreeListCapacity
	}
	if cfg.BatchCapacity < 0 {
		panic("collect: batch capacity must be positive")
	}
	if cfg.FreeListCapacity < 0 {
		panic("collect: free list capacity must be positive")
	}

	return &Collector[T]{
		capacity: cfg.BatchCapacity,
		free:     newFreeList[T](cfg.FreeListCapacity),
		empty:    emptySeq[T],
	}
}

// BatchCapacity returns the configured per-batch value capacity.
func (c *Collector[T]) BatchCapacity() int { return c.capacity }

// Handle returns a producer bound to this collector, reusing a
// tombstoned registry entry when one is available. Use one handle per
// producing goroutine.
func (c *Collector[T]) Handle() *Handle[T] {
	c.liveHandles.Add(1)
	if h := c.handles.reuse(); h != nil {
		return h
	}
	h := &Handle[T]{col: c}
	c.handles.add(h)
	return h
}

// Collect steals every pending value and returns a one-shot sequence
// over them: the chain is detached in a single atomic exchange, then
// each registered handle's partial batch is force-flushed with one more
// exchange. Cost is bounded by contention and handle count, never by
// the number of pending values; with nothing pending it degenerates to
// one atomic read-and-clear and allocates nothing.
//
// Within one batch, values drain in push order; a single producer's
// batches drain in fill order; across producers the order is
// deterministic for the call but unspecified. As each batch is fully
// drained it returns to the free list. Breaking out of the iteration
// discards the remaining values and still recycles their batches; a
// sequence that is never ranged over surrenders its values to the GC.
func (c *Collector[T]) Collect() iter.Seq[T] {
	c.collects.Add(1)
	stolen := reverseChain(c.published.steal())

	var tail *batch[T]
	for t := stolen; t != nil; t = t.next {
		tail = t
	}

	// Force-flush: same exchange protocol as Handle.Flush. Partials are
	// appended behind the published batches; swapped-out empty batches
	// go straight back to the free list.
	for h := c.handles.head.Load(); h != nil; h = h.next {
		b := h.cur.Swap(nil)
		if b == nil {
			continue
		}
		if b.empty() {
			c.putBatch(b)
			continue
		}
		b.next = nil
		if tail == nil {
			stolen = b
		} else {
			tail.next = b
		}
		tail = b
	}

	if stolen == nil {
		return c.empty
	}
	return c.drain(stolen)
}

// Stats returns a snapshot of the collector's counters.
func (c *Collector[T]) Stats() api.CollectorStats {
	return api.CollectorStats{
		BatchesAllocated: c.allocated.Load(),
		BatchesRecycled:  c.recycled.Load(),
		BatchesRetired:   c.retired.Load(),
		BatchesPublished: c.publishes.Load(),
		Collects:         c.collects.Load(),
		ValuesCollected:  c.collected.Load(),
		LiveHandles:      c.liveHandles.Load(),
	}
}

// emptySeq backs the cached empty sequence. The func value is
// materialized once in NewWithConfig: instantiating it inside Collect
// would cost one allocation per empty collect.
func emptySeq[T any](func(T) bool) {}

// drain wraps an exclusively owned chain as a one-shot lazy sequence.
func (c *Collector[T]) drain(stolen *batch[T]) iter.Seq[T] {
	var consumed atomic.Bool
	return func(yield func(T) bool) {
		if !consumed.CompareAndSwap(false, true) {
			return
		}
		b := stolen
		for b != nil {
			next := b.next
			for i := 0; i < b.cnt; i++ {
				if !yield(b.vals[i]) {
					c.collected.Add(int64(i + 1))
					c.discard(b, next)
					return
				}
			}
			c.collected.Add(int64(b.cnt))
			c.putBatch(b)
			b = next
		}
	}
}

// discard recycles the rest of a chain after an abandoned drain,
// dropping the remaining values.
func (c *Collector[T]) discard(b, next *batch[T]) {
	c.putBatch(b)
	for b = next; b != nil; {
		next = b.next
		c.putBatch(b)
		b = next
	}
}

// takeBatch returns an empty batch, recycled when possible.
func (c *Collector[T]) takeBatch() *batch[T] {
	if b := c.free.acquire(); b != nil {
		c.recycled.Add(1)
		return b
	}
	c.allocated.Add(1)
	return newBatch[T](c.capacity)
}

// putBatch clears b and offers it for reuse.
func (c *Collector[T]) putBatch(b *batch[T]) {
	b.reset()
	if !c.free.release(b) {
		c.retired.Add(1)
	}
}

func (c *Collector[T]) publish(b *batch[T]) {
	c.published.publish(b)
	c.publishes.Add(1)
}

var _ api.Drainer[int] = (*Collector[int])(nil)
