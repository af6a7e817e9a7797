// File: core/collect/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free handle registry. Entries are pushed once and never
// unlinked, so walks never race with removal; closed entries are
// tombstoned by Handle.Close and reclaimed by the next Handle call.

package collect

import "sync/atomic"

// registry chains every handle ever created for a collector. Its length
// is bounded by the peak number of simultaneously live handles.
type registry[T any] struct {
	head atomic.Pointer[Handle[T]]
}

// add links h onto the head. The next link is immutable afterwards.
func (r *registry[T]) add(h *Handle[T]) {
	for {
		top := r.head.Load()
		h.next = top
		if r.head.CompareAndSwap(top, h) {
			return
		}
	}
}

// reuse claims a tombstoned entry, or returns nil when none is free.
func (r *registry[T]) reuse() *Handle[T] {
	for h := r.head.Load(); h != nil; h = h.next {
		if h.state.CompareAndSwap(handleClosed, handleActive) {
			return h
		}
	}
	return nil
}
