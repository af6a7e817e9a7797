// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Stats watcher for system-level monitoring. Collectors register a
// stats source under a name; Snapshot samples all of them at once.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-collect/api"
)

// StatsSource produces a point-in-time collector snapshot, typically
// the Stats method of a collector.
type StatsSource func() api.CollectorStats

// Watcher holds named stats sources with dynamic registration.
type Watcher struct {
	mu      sync.RWMutex
	sources map[string]StatsSource
	updated time.Time
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{
		sources: make(map[string]StatsSource),
	}
}

// Register adds or replaces a named stats source.
func (w *Watcher) Register(name string, src StatsSource) {
	w.mu.Lock()
	w.sources[name] = src
	w.mu.Unlock()
}

// Snapshot samples every registered source.
func (w *Watcher) Snapshot() map[string]api.CollectorStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]api.CollectorStats, len(w.sources))
	for name, src := range w.sources {
		out[name] = src()
	}
	w.updated = time.Now()
	return out
}

// Updated returns the time of the latest snapshot.
func (w *Watcher) Updated() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.updated
}
