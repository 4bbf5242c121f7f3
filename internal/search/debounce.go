package search

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultQuietPeriod is the pause after the last keystroke before a
// search is actually issued.
const DefaultQuietPeriod = 300 * time.Millisecond

// Debouncer serializes keystroke-driven queries: each new query restarts
// the quiet period, and a generation counter guarantees that only the
// result of the last-issued query reaches the apply callback. In-flight
// requests are not cancelled; their late results are discarded.
type Debouncer struct {
	agg   *Aggregator
	delay time.Duration
	apply func(Results, error)

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

func NewDebouncer(agg *Aggregator, delay time.Duration, apply func(Results, error)) *Debouncer {
	if delay <= 0 {
		delay = DefaultQuietPeriod
	}
	return &Debouncer{agg: agg, delay: delay, apply: apply}
}

// Query registers a keystroke. An empty (trimmed) query short-circuits:
// pending work is cancelled and empty results are applied synchronously,
// with no network call.
func (d *Debouncer) Query(ctx context.Context, query string) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if strings.TrimSpace(query) == "" {
		d.mu.Unlock()
		d.apply(emptyResults(), nil)
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		res, err := d.agg.Search(ctx, query)
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		d.apply(res, err)
	})
	d.mu.Unlock()
}

// Cancel drops any pending query without applying anything.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
