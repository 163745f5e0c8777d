package resizer

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxfit/pkg/sizing"
)

// DefaultDebounce is the quiet period of Schedule.
const DefaultDebounce = 100 * time.Millisecond

// Callback receives the placement produced by a recompute.
type Callback func(out sizing.Output)

// Option configures a Resizer at construction.
type Option func(*settings)

// settings holds construction options before defaults are resolved.
type settings struct {
	active       bool
	target       Element
	container    Element
	containerSet bool
	width        float64
	height       float64
	handler      sizing.Handler
	padding      float64
	sides        [4]*float64 // top, right, bottom, left
	callback     Callback
	autoResize   bool
	signals      SignalSource
	clock        Clock
	debounce     time.Duration
	logger       *log.Logger
}

const (
	sideTop = iota
	sideRight
	sideBottom
	sideLeft
)

func defaultSettings() settings {
	return settings{
		active:     true,
		handler:    sizing.Center,
		autoResize: true,
		clock:      RealClock(),
		debounce:   DefaultDebounce,
	}
}

// resolve produces the fully populated configuration. It runs exactly once.
func (s *settings) resolve() Config {
	cfg := Config{
		Active:   s.active,
		Target:   s.target,
		Width:    s.width,
		Height:   s.height,
		Sizing:   s.handler,
		Callback: s.callback,
	}
	if s.containerSet {
		cfg.Container = s.container
	} else if s.target != nil {
		cfg.Container = s.target.Parent()
	}
	if cfg.Sizing == nil {
		cfg.Sizing = sizing.Center
	}

	side := func(i int) float64 {
		if s.sides[i] != nil {
			return *s.sides[i]
		}
		return s.padding
	}
	cfg.PaddingTop = side(sideTop)
	cfg.PaddingRight = side(sideRight)
	cfg.PaddingBottom = side(sideBottom)
	cfg.PaddingLeft = side(sideLeft)
	return cfg
}

// WithActive sets the initial active flag. Defaults to true.
func WithActive(active bool) Option {
	return func(s *settings) { s.active = active }
}

// WithTarget sets the element that receives the computed box.
func WithTarget(e Element) Option {
	return func(s *settings) { s.target = e }
}

// WithContainer sets the element whose bounds are measured. When omitted the
// target's parent is used. Passing nil explicitly leaves the container unset.
func WithContainer(e Element) Option {
	return func(s *settings) {
		s.container = e
		s.containerSet = true
	}
}

// WithSize sets the desired (intrinsic) target size.
func WithSize(width, height float64) Option {
	return func(s *settings) {
		s.width = width
		s.height = height
	}
}

// WithSizing sets the sizing handler. Defaults to sizing.Center.
func WithSizing(h sizing.Handler) Option {
	return func(s *settings) { s.handler = h }
}

// WithPadding sets the shared padding used by every side without an
// explicit override.
func WithPadding(p float64) Option {
	return func(s *settings) { s.padding = p }
}

// WithPaddingTop overrides the top padding.
func WithPaddingTop(p float64) Option { return withSide(sideTop, p) }

// WithPaddingRight overrides the right padding.
func WithPaddingRight(p float64) Option { return withSide(sideRight, p) }

// WithPaddingBottom overrides the bottom padding.
func WithPaddingBottom(p float64) Option { return withSide(sideBottom, p) }

// WithPaddingLeft overrides the left padding.
func WithPaddingLeft(p float64) Option { return withSide(sideLeft, p) }

func withSide(i int, p float64) Option {
	return func(s *settings) { s.sides[i] = &p }
}

// WithCallback sets the callback invoked after every applied recompute.
func WithCallback(cb Callback) Option {
	return func(s *settings) { s.callback = cb }
}

// WithAutoResize controls whether the resizer subscribes to the signal
// source. Defaults to true; it has no effect without WithSignals.
func WithAutoResize(on bool) Option {
	return func(s *settings) { s.autoResize = on }
}

// WithSignals sets the source of resize and orientation signals.
func WithSignals(src SignalSource) Option {
	return func(s *settings) { s.signals = src }
}

// WithClock replaces the clock driving the debounce timer.
func WithClock(c Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithDebounce sets the quiet period of Schedule. Non-positive values keep
// DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLogger sets the logger used for debug output. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}
