// File: core/collect/chain.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free chain of published batches. Publish is a compare-and-retry
// push; steal detaches the entire chain in one atomic exchange, so the
// nothing-published case costs exactly one atomic operation and no
// traversal.

package collect

import "sync/atomic"

// chain holds published batches in LIFO order. A batch reachable through
// the chain is frozen: only the thread that steals the chain may touch
// it again.
type chain[T any] struct {
	head atomic.Pointer[batch[T]]
}

// publish links b onto the head. Retries under contention; some
// publisher always makes progress. The CAS establishes the
// release-acquire edge that lets the stealing thread read b's values
// without further synchronization.
func (c *chain[T]) publish(b *batch[T]) {
	for {
		top := c.head.Load()
		b.next = top
		if c.head.CompareAndSwap(top, b) {
			return
		}
	}
}

// steal detaches the whole chain. O(1) in chain length; nil when
// nothing was published.
func (c *chain[T]) steal() *batch[T] {
	return c.head.Swap(nil)
}

// reverseChain flips a stolen chain in place so batches run
// oldest-published first. This is what keeps a single producer's values
// in push order across its batches. The caller must own the chain
// exclusively.
func reverseChain[T any](b *batch[T]) *batch[T] {
	var prev *batch[T]
	for b != nil {
		next := b.next
		b.next = prev
		prev = b
		b = next
	}
	return prev
}
