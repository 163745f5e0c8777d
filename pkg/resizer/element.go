package resizer

// Element is a handle to a renderable element.
//
// A resizer reads Bounds from its container and writes SetBox on its
// target. Parent is consulted once, at construction, to default the
// container from the target. Implementations must be safe for concurrent
// use when the resizer runs on a real clock.
type Element interface {
	Bounds() Size
	SetBox(b Box)
	Parent() Element
}

// Signal identifies a category of environment event that invalidates a placement.
type Signal string

const (
	// SignalResize fires when the viewport is resized.
	SignalResize Signal = "resize"
	// SignalOrientation fires when the viewport orientation changes.
	SignalOrientation Signal = "orientationchange"
)

// Signals lists the signals a resizer subscribes to when auto-resizing.
var Signals = []Signal{SignalResize, SignalOrientation}

// SignalSource delivers environment signals to zero-argument listeners.
// AddListener returns a function that removes exactly that registration.
type SignalSource interface {
	AddListener(sig Signal, listener func()) (remove func())
}
