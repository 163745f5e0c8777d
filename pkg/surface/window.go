package surface

import (
	"sync"

	"github.com/matzehuels/boxfit/pkg/resizer"
)

// Orientation of a viewport.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// OrientationOf classifies a size. Square sizes are portrait.
func OrientationOf(s resizer.Size) Orientation {
	if s.Landscape() {
		return Landscape
	}
	return Portrait
}

// Bus fans signals out to registered listeners.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners map[resizer.Signal]map[int]func()
	order     map[resizer.Signal][]int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[resizer.Signal]map[int]func()),
		order:     make(map[resizer.Signal][]int),
	}
}

// AddListener registers l for sig. The returned function removes exactly
// this registration and may be called more than once.
func (b *Bus) AddListener(sig resizer.Signal, l func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners[sig] == nil {
		b.listeners[sig] = make(map[int]func())
	}
	id := b.next
	b.next++
	b.listeners[sig][id] = l
	b.order[sig] = append(b.order[sig], id)

	return func() { b.remove(sig, id) }
}

func (b *Bus) remove(sig resizer.Signal, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.listeners[sig][id]; !ok {
		return
	}
	delete(b.listeners[sig], id)
	ids := b.order[sig]
	for i, v := range ids {
		if v == id {
			b.order[sig] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

// Emit calls every listener of sig in registration order. Listeners run
// without the bus lock held.
func (b *Bus) Emit(sig resizer.Signal) {
	b.mu.Lock()
	ls := make([]func(), 0, len(b.order[sig]))
	for _, id := range b.order[sig] {
		ls = append(ls, b.listeners[sig][id])
	}
	b.mu.Unlock()

	for _, l := range ls {
		l()
	}
}

// Listeners returns the number of listeners registered for sig.
func (b *Bus) Listeners(sig resizer.Signal) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[sig])
}

// Window is a root surface that emits viewport signals when resized.
type Window struct {
	*Surface
	*Bus
}

// NewWindow creates a viewport of the given size.
func NewWindow(width, height float64) *Window {
	return &Window{Surface: New("window", width, height), Bus: NewBus()}
}

// Orientation returns the current orientation.
func (w *Window) Orientation() Orientation { return OrientationOf(w.Bounds()) }

// Resize updates the viewport size and emits SignalResize, followed by
// SignalOrientation when the orientation flips. Resizing to the current
// size emits nothing.
func (w *Window) Resize(width, height float64) {
	before := w.Bounds()
	after := resizer.Size{Width: width, Height: height}
	if before == after {
		return
	}
	w.Surface.Resize(width, height)

	w.Emit(resizer.SignalResize)
	if OrientationOf(before) != OrientationOf(after) {
		w.Emit(resizer.SignalOrientation)
	}
}

// Rotate swaps width and height, as a device rotation would, and emits
// both signals.
func (w *Window) Rotate() {
	b := w.Bounds()
	w.Surface.Resize(b.Height, b.Width)
	w.Emit(resizer.SignalResize)
	w.Emit(resizer.SignalOrientation)
}
