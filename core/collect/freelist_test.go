package collect

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestFreeListAcquireEmpty(t *testing.T) {
	f := newFreeList[int](8)
	if f.acquire() != nil {
		t.Fatal("acquire from empty free list should return nil")
	}
}

func TestFreeListRoundTrip(t *testing.T) {
	f := newFreeList[int](8)
	b := newBatch[int](4)

	if !f.release(b) {
		t.Fatal("release into empty free list should succeed")
	}
	if got := f.acquire(); got != b {
		t.Fatalf("acquire returned %p, want the released batch %p", got, b)
	}
	if f.acquire() != nil {
		t.Fatal("free list should be empty again")
	}
}

func TestFreeListOverflow(t *testing.T) {
	f := newFreeList[int](2)

	if !f.release(newBatch[int](1)) || !f.release(newBatch[int](1)) {
		t.Fatal("releases within capacity should succeed")
	}
	if f.release(newBatch[int](1)) {
		t.Fatal("release into full free list should report overflow")
	}
}

func TestFreeListConcurrentChurn(t *testing.T) {
	const (
		workers = 8
		rounds  = 20000
	)
	f := newFreeList[int](64)
	var acquired, released atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if b := f.acquire(); b != nil {
					acquired.Add(1)
					if f.release(b) {
						released.Add(1)
					}
				} else if f.release(newBatch[int](1)) {
					released.Add(1)
				}
				if i%1024 == 0 {
					runtime.Gosched()
				}
			}
		}()
	}
	wg.Wait()

	// Whatever remains in the ring must be exactly what was released
	// minus what was taken back out.
	remaining := int64(0)
	for f.acquire() != nil {
		remaining++
	}
	if remaining != released.Load()-acquired.Load() {
		t.Fatalf("ring holds %d batches, want %d (released %d, acquired %d)",
			remaining, released.Load()-acquired.Load(), released.Load(), acquired.Load())
	}
}
