// File: core/collect/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package collect implements a lock-free batched stealing collector.
// Producing goroutines push values through per-goroutine handles into
// fixed-capacity batches; full batches are published onto a lock-free
// chain; Collect detaches the whole chain, plus every handle's partial
// batch, with one atomic exchange per structure. Emptied batches are
// recycled through a bounded free list, so steady-state operation
// allocates nothing and the empty collect costs a single atomic
// read-and-clear.
package collect
