package resizer

import (
	"sync"
	"time"
)

// debouncer runs fire once per quiet period, on the trailing edge, with the
// callback passed to the last trigger.
type debouncer struct {
	clock Clock
	delay time.Duration
	fire  func(extra Callback)

	mu      sync.Mutex
	timer   Timer
	pending Callback
	gen     uint64
}

func newDebouncer(clock Clock, delay time.Duration, fire func(Callback)) *debouncer {
	return &debouncer{clock: clock, delay: delay, fire: fire}
}

// trigger cancels any pending timer and starts a new one.
// Earlier pending callbacks are dropped.
func (d *debouncer) trigger(extra Callback) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = extra
	d.timer = d.clock.AfterFunc(d.delay, func() { d.expire(gen) })
}

// expire is the timer body. A timer that was replaced or cancelled may still
// run if Stop lost the race; the generation check turns it into a no-op.
func (d *debouncer) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	extra := d.pending
	d.timer = nil
	d.pending = nil
	d.mu.Unlock()

	d.fire(extra)
}

// cancel drops the pending run, if any, and reports whether one was pending.
func (d *debouncer) cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.gen++
	d.timer = nil
	d.pending = nil
	return true
}

func (d *debouncer) pendingRun() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
