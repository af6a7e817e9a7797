// File: core/collect/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-goroutine producer handle. The current batch lives in an
// atomically swappable slot shared with the collector's forced flush:
// whoever swaps out a non-nil batch owns it exclusively, and a nil slot
// means no batch is installed. No half-complete hand-off is ever
// observable.

package collect

import (
	"sync/atomic"

	"github.com/momentics/hioload-collect/api"
)

const (
	handleActive uint32 = iota
	handleClosed
)

// Handle is a producer bound to one Collector. Use one handle per
// producing goroutine: Push must only be called by the owning
// goroutine. Flush and Close are exchange-based and safe to call from
// any goroutine.
type Handle[T any] struct {
	col   *Collector[T]
	cur   atomic.Pointer[batch[T]]
	state atomic.Uint32
	next  *Handle[T] // registry link, immutable once registered
}

// Push appends val to the current batch. When the batch fills up it is
// published in one step and a fresh batch is installed, so the next
// push lands in the fresh one. Never blocks; a concurrent Collect
// either sees the previous batch or the new one, never an intermediate
// state. Returns ErrHandleClosed after Close.
func (h *Handle[T]) Push(val T) error {
	if h.state.Load() != handleActive {
		return api.ErrHandleClosed
	}

	b := h.cur.Swap(nil)
	if b == nil {
		b = h.col.takeBatch()
	}
	b.push(val) // an installed batch is never full
	if b.full() {
		h.col.publish(b)
		b = h.col.takeBatch()
	}
	h.cur.Store(b)
	return nil
}

// Flush publishes the current batch even when partially filled. An
// empty batch goes back to the free list instead of the chain.
func (h *Handle[T]) Flush() {
	b := h.cur.Swap(nil)
	if b == nil {
		return
	}
	if b.empty() {
		h.col.putBatch(b)
		return
	}
	h.col.publish(b)
}

// Close flushes pending values, then tombstones the registry entry so
// a future Handle call can reuse it. The flush completes before the
// entry becomes reusable, so a reusing handle never has its first
// pushes swept by the tail of an old Close. Values flushed here are
// delivered by the next Collect; a graceful teardown never drops
// values.
func (h *Handle[T]) Close() {
	h.Flush()
	if !h.state.CompareAndSwap(handleActive, handleClosed) {
		return
	}
	h.col.liveHandles.Add(-1)
}

var _ api.Producer[int] = (*Handle[int])(nil)
