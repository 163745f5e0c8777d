package resizer

import (
	"sort"
	"sync"
	"time"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock    *manualClock
	deadline time.Duration
	f        func()
	stopped  bool
	fired    bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, deadline: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every due timer in deadline order,
// outside the clock lock.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.deadline <= c.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline < due[j].deadline })
	for _, t := range due {
		t.f()
	}
}

// Active returns the number of timers neither stopped nor fired.
func (c *manualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// fakeElement records reads and writes.
type fakeElement struct {
	mu     sync.Mutex
	size   Size
	parent Element
	reads  int
	boxes  []Box
}

func (e *fakeElement) Bounds() Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reads++
	return e.size
}

func (e *fakeElement) SetBox(b Box) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.boxes = append(e.boxes, b)
}

func (e *fakeElement) Parent() Element { return e.parent }

func (e *fakeElement) Reads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reads
}

func (e *fakeElement) Boxes() []Box {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Box(nil), e.boxes...)
}

// fakeSignals keeps listeners per signal.
type fakeSignals struct {
	mu        sync.Mutex
	next      int
	listeners map[Signal]map[int]func()
}

func newFakeSignals() *fakeSignals {
	return &fakeSignals{listeners: make(map[Signal]map[int]func())}
}

func (s *fakeSignals) AddListener(sig Signal, l func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners[sig] == nil {
		s.listeners[sig] = make(map[int]func())
	}
	id := s.next
	s.next++
	s.listeners[sig][id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[sig], id)
	}
}

func (s *fakeSignals) Emit(sig Signal) {
	s.mu.Lock()
	var ls []func()
	for _, l := range s.listeners[sig] {
		ls = append(ls, l)
	}
	s.mu.Unlock()
	for _, l := range ls {
		l()
	}
}

func (s *fakeSignals) Count(sig Signal) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[sig])
}

// scene is a container 800x600 holding a target.
func scene() (container, target *fakeElement) {
	container = &fakeElement{size: Size{Width: 800, Height: 600}}
	target = &fakeElement{parent: container}
	return container, target
}
