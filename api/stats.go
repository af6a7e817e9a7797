// File: api/stats.go
// Author: momentics <momentics@gmail.com>
//
// Stats snapshot for collector instrumentation. The allocation counters
// double as the hook for verifying allocation-free fast paths and
// steady-state batch recycling.

package api

// CollectorStats is a point-in-time snapshot of a collector's counters.
type CollectorStats struct {
	// BatchesAllocated counts batches allocated fresh from the heap.
	BatchesAllocated int64
	// BatchesRecycled counts batches reused from the free list.
	BatchesRecycled int64
	// BatchesRetired counts emptied batches dropped to the GC because
	// the free list was full.
	BatchesRetired int64
	// BatchesPublished counts batches handed off to the shared chain by
	// producers: full batches and explicit flushes. Partial batches
	// force-flushed by Collect move straight into the stolen set and are
	// not counted here.
	BatchesPublished int64
	// Collects counts Collect calls, including empty ones.
	Collects int64
	// ValuesCollected counts values delivered to Collect callers.
	ValuesCollected int64
	// LiveHandles is the number of currently open handles.
	LiveHandles int64
}
