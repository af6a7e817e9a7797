package collect

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/momentics/hioload-collect/api"
)

func TestFlushEmptyIsNoop(t *testing.T) {
	c := New[int](4)
	h := c.Handle()

	h.Flush() // no batch installed yet
	if got := c.Stats().BatchesPublished; got != 0 {
		t.Fatalf("flush with no batch published %d batches, want 0", got)
	}

	h.Push(1)
	h.Flush()
	h.Flush() // slot is empty again after the previous flush
	if got := c.Stats().BatchesPublished; got != 1 {
		t.Fatalf("published %d batches, want only the explicit flush", got)
	}
	drainAll(c)
}

func TestFlushPartialPublishes(t *testing.T) {
	c := New[int](8)
	h := c.Handle()

	h.Push(1)
	h.Push(2)
	h.Flush()

	if got := c.Stats().BatchesPublished; got != 1 {
		t.Fatalf("published %d batches, want 1", got)
	}
	if got := drainAll(c); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("drained %v, want [1 2]", got)
	}
}

func TestPushAfterFlushLandsInFreshBatch(t *testing.T) {
	c := New[int](8)
	h := c.Handle()

	h.Push(1)
	h.Flush()
	h.Push(2)

	if got := drainAll(c); len(got) != 2 {
		t.Fatalf("drained %v, want both values", got)
	}
}

func TestCloseFlushesAndRejectsPush(t *testing.T) {
	c := New[int](8)
	h := c.Handle()

	h.Push(1)
	h.Push(2)
	h.Close()

	if err := h.Push(3); !errors.Is(err, api.ErrHandleClosed) {
		t.Fatalf("push after close returned %v, want ErrHandleClosed", err)
	}
	if got := drainAll(c); len(got) != 2 {
		t.Fatalf("drained %v, want the two values flushed by Close", got)
	}
	if got := c.Stats().LiveHandles; got != 0 {
		t.Fatalf("live handles = %d after close, want 0", got)
	}

	h.Close() // second close is a no-op
	if got := c.Stats().LiveHandles; got != 0 {
		t.Fatalf("double close changed live handles to %d", got)
	}
}

func TestCloseFlushesBeforeEntryIsReusable(t *testing.T) {
	c := New[int](8)
	h := c.Handle()
	h.Push(1)
	h.Close()

	// Once the entry is tombstoned (and therefore reusable), the old
	// owner's batch must already be in the chain and the slot empty.
	if h.state.Load() != handleClosed {
		t.Fatal("closed handle should be tombstoned")
	}
	if h.cur.Load() != nil {
		t.Fatal("closed handle still holds a batch in its slot")
	}
	if got := c.Stats().BatchesPublished; got != 1 {
		t.Fatalf("published %d batches before tombstoning, want 1", got)
	}

	h2 := c.Handle()
	if h2 != h {
		t.Fatal("tombstoned entry should be reused")
	}
	h2.Push(2)
	if got := drainAll(c); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("drained %v, want [1 2]", got)
	}
}

func TestHandleReuseChurn(t *testing.T) {
	const (
		workers = 4
		rounds  = 2000
		perOpen = 3
	)
	c := New[int](8)
	var pushed, delivered atomic.Int64
	var wg sync.WaitGroup

	// Open/push/close churn recycles registry entries while a collector
	// races the teardown flushes.
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				h := c.Handle()
				for i := 0; i < perOpen; i++ {
					if err := h.Push(i); err != nil {
						t.Errorf("push on freshly opened handle: %v", err)
						h.Close()
						return
					}
					pushed.Add(1)
				}
				h.Close()
			}
		}()
	}

	stop := make(chan struct{})
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for {
			for range c.Collect() {
				delivered.Add(1)
			}
			select {
			case <-stop:
				return
			default:
			}
		}
	}()

	wg.Wait()
	close(stop)
	collectorWg.Wait()

	for range c.Collect() {
		delivered.Add(1)
	}
	if delivered.Load() != pushed.Load() {
		t.Fatalf("delivered %d values, want %d", delivered.Load(), pushed.Load())
	}
	if got := c.Stats().LiveHandles; got != 0 {
		t.Fatalf("live handles = %d after churn, want 0", got)
	}
}

func TestHandleSlotReuse(t *testing.T) {
	c := New[int](8)

	h1 := c.Handle()
	h1.Close()

	h2 := c.Handle()
	if h2 != h1 {
		t.Fatal("closed handle slot should be reused")
	}
	if got := c.Stats().LiveHandles; got != 1 {
		t.Fatalf("live handles = %d, want 1", got)
	}
	if err := h2.Push(7); err != nil {
		t.Fatalf("push on reused handle failed: %v", err)
	}
	if got := drainAll(c); len(got) != 1 || got[0] != 7 {
		t.Fatalf("drained %v, want [7]", got)
	}
}
