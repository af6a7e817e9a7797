// File: core/collect/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity single-writer batch of produced values.
// NOT thread-safe and avoids any synchronization in the hot path:
// ownership hand-off happens at the handle slot and chain boundaries.

package collect

// batch buffers values in insertion order and carries an intrusive link
// used while chained. Exactly one owner mutates it at any instant: the
// producing goroutine while filling, nobody while published, the
// collecting goroutine once stolen.
type batch[T any] struct {
	next *batch[T] // meaningful only while published
	cnt  int
	vals []T
}

func newBatch[T any](capacity int) *batch[T] {
	return &batch[T]{vals: make([]T, capacity)}
}

// push writes val into the next free slot. Returns false when full.
func (b *batch[T]) push(val T) bool {
	if b.cnt == len(b.vals) {
		return false
	}
	b.vals[b.cnt] = val
	b.cnt++
	return true
}

func (b *batch[T]) full() bool { return b.cnt == len(b.vals) }

func (b *batch[T]) empty() bool { return b.cnt == 0 }

// reset clears stored values so the GC can reclaim them, then rewinds
// the batch for reuse.
func (b *batch[T]) reset() {
	var zero T
	for i := 0; i < b.cnt; i++ {
		b.vals[i] = zero
	}
	b.cnt = 0
	b.next = nil
}
