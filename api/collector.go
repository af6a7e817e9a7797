// File: api/collector.go
// Author: momentics <momentics@gmail.com>
//
// Abstract producer/drainer contracts for batched value collection.

package api

import "iter"

// Producer is the per-goroutine endpoint that feeds values into a
// collector. Push must only be called by the owning goroutine.
type Producer[T any] interface {
	// Push appends a value to the producer's current batch.
	Push(val T) error

	// Flush publishes the current batch even when partially filled.
	Flush()

	// Close flushes pending values and retires the producer.
	Close()
}

// Drainer steals and drains all pending values of a collector.
type Drainer[T any] interface {
	// Collect returns a one-shot sequence over every value pending at
	// the instant of the call.
	Collect() iter.Seq[T]

	// Stats returns a snapshot of the collector's counters.
	Stats() CollectorStats
}
