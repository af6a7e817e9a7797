// File: core/collect/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC recycler for emptied batches, using sequence-numbered
// cells in the style of Dmitry Vyukov's bounded queue. Batches are
// reused aggressively, which rules out a linked free stack: concurrent
// single-node pops over recycled nodes are ABA-prone, while sequence
// numbers are immune. Overflow degrades gracefully to the GC.

package collect

import "sync/atomic"

const cacheLinePad = 64

type freeCell[T any] struct {
	seq atomic.Uint64
	b   *batch[T]
}

// freeList is a fixed-capacity MPMC pool of empty batches. Capacity is
// rounded up to a power of two.
type freeList[T any] struct {
	head  atomic.Uint64
	_     [cacheLinePad]byte
	tail  atomic.Uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []freeCell[T]
}

func newFreeList[T any](capacity int) *freeList[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}

	f := &freeList[T]{
		mask:  uint64(size - 1),
		cells: make([]freeCell[T], size),
	}
	for i := range f.cells {
		f.cells[i].seq.Store(uint64(i))
	}
	return f
}

// release offers an emptied batch for reuse. Returns false when the
// ring is full; the caller leaves the batch to the GC.
func (f *freeList[T]) release(b *batch[T]) bool {
	for {
		tail := f.tail.Load()
		c := &f.cells[tail&f.mask]
		seq := c.seq.Load()
		dif := int64(seq) - int64(tail)

		if dif == 0 {
			if f.tail.CompareAndSwap(tail, tail+1) {
				c.b = b
				c.seq.Store(tail + 1)
				return true
			}
		} else if dif < 0 {
			return false // full
		}
		// tail moved, retry
	}
}

// acquire removes one recycled batch, or returns nil when none is
// available and the caller must allocate.
func (f *freeList[T]) acquire() *batch[T] {
	for {
		head := f.head.Load()
		c := &f.cells[head&f.mask]
		seq := c.seq.Load()
		dif := int64(seq) - int64(head+1)

		if dif == 0 {
			if f.head.CompareAndSwap(head, head+1) {
				b := c.b
				c.b = nil
				c.seq.Store(head + f.mask + 1)
				return b
			}
		} else if dif < 0 {
			return nil // empty
		}
		// head moved, retry
	}
}
