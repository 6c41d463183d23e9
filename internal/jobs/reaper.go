package jobs

import (
	"context"
	"log"
	"time"
)

// Evicter removes expired entries and reports how many were removed.
type Evicter interface {
	Reap() int
}

// Reaper periodically evicts idle workspaces.
type Reaper struct {
	store    Evicter
	interval time.Duration
	onEvict  func(n int)
}

// NewReaper creates a reaper for store running every interval. onEvict, if
// set, is called after each pass that removed something.
func NewReaper(store Evicter, interval time.Duration, onEvict func(n int)) *Reaper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Reaper{store: store, interval: interval, onEvict: onEvict}
}

// Start runs the eviction loop until ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	log.Printf("Workspace reaper started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Workspace reaper stopped")
			return
		case <-ticker.C:
			r.RunOnce()
		}
	}
}

// RunOnce performs a single eviction pass.
func (r *Reaper) RunOnce() int {
	n := r.store.Reap()
	if n == 0 {
		return 0
	}
	log.Printf("Workspace reaper: evicted %d idle workspaces", n)
	if r.onEvict != nil {
		r.onEvict(n)
	}
	return n
}
