package resizer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boxfit/pkg/observability"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// Config is the mutable state of a Resizer.
//
// It is fully resolved at construction; no field is re-derived later. In
// particular, replacing Target through Configure does not update Container.
type Config struct {
	Active bool

	Target    Element
	Container Element

	// Width and Height are the desired (intrinsic) target size.
	Width  float64
	Height float64

	Sizing sizing.Handler

	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64

	Callback Callback
}

// Input builds the sizing input for the given container bounds.
func (c Config) Input(bounds Size) sizing.Input {
	return sizing.Input{
		PaddingTop:      c.PaddingTop,
		PaddingRight:    c.PaddingRight,
		PaddingBottom:   c.PaddingBottom,
		PaddingLeft:     c.PaddingLeft,
		ContainerWidth:  bounds.Width,
		ContainerHeight: bounds.Height,
		TargetWidth:     c.Width,
		TargetHeight:    c.Height,
	}
}

// Skip reasons reported to logs and hooks.
const (
	SkipInactive = "inactive"
	SkipUnbound  = "unbound"
)

// Resizer applies a sizing handler to a target whenever asked, directly or
// through the debounced Schedule.
type Resizer struct {
	id       string
	logger   *log.Logger
	debounce *debouncer

	mu       sync.Mutex
	cfg      Config
	listener func()
	removers []func()
}

// New creates a Resizer. Defaults are resolved once here.
//
// When auto-resize is enabled and a signal source is configured, one bound
// listener is registered for SignalResize and SignalOrientation. When the
// resizer starts active, one debounced recompute is scheduled.
func New(opts ...Option) *Resizer {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	r := &Resizer{
		id:     uuid.New().String(),
		logger: s.logger,
		cfg:    s.resolve(),
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	r.debounce = newDebouncer(s.clock, s.debounce, r.RecomputeSync)
	r.listener = func() { r.Schedule(nil) }

	if s.autoResize && s.signals != nil {
		for _, sig := range Signals {
			r.removers = append(r.removers, s.signals.AddListener(sig, r.listener))
		}
	}

	r.logger.Debug("resizer created",
		"resizer", r.id,
		"active", r.cfg.Active,
		"listeners", len(r.removers),
		"debounce", s.debounce)

	if r.cfg.Active {
		r.Schedule(nil)
	}
	return r
}

// ID returns the random identifier used in logs and hooks.
func (r *Resizer) ID() string { return r.id }

// Config returns a snapshot of the current configuration.
func (r *Resizer) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Configure mutates the configuration in place. No validation is performed.
// A nil Sizing is replaced by sizing.Center.
func (r *Resizer) Configure(fn func(*Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.cfg)
	if r.cfg.Sizing == nil {
		r.cfg.Sizing = sizing.Center
	}
}

// RecomputeSync measures the container, runs the sizing handler, writes the
// box to the target, then calls the configured callback and extra, in that
// order, with the same output.
//
// It silently does nothing while the resizer is inactive or when either the
// target or the container is unset.
func (r *Resizer) RecomputeSync(extra Callback) {
	cfg := r.Config()
	if !cfg.Active {
		r.skip(SkipInactive)
		return
	}
	if cfg.Target == nil || cfg.Container == nil {
		r.skip(SkipUnbound)
		return
	}

	start := time.Now()
	bounds := cfg.Container.Bounds()
	out := cfg.Sizing.Size(cfg.Input(bounds))
	cfg.Target.SetBox(BoxFromOutput(out))

	if cfg.Callback != nil {
		cfg.Callback(out)
	}
	if extra != nil {
		extra(out)
	}

	elapsed := time.Since(start)
	r.logger.Debug("recompute",
		"resizer", r.id,
		"container", bounds,
		"width", out.Width,
		"height", out.Height,
		"left", out.Left,
		"top", out.Top,
		"scale", out.Scale)
	observability.Resizer().OnRecompute(r.id, out.Width, out.Height, out.Scale, elapsed)
}

// Schedule requests a recompute after the quiet period. Each call restarts
// the period; only the last call's extra callback is delivered.
func (r *Resizer) Schedule(extra Callback) {
	r.debounce.trigger(extra)
	observability.Resizer().OnSchedule(r.id)
}

// Pending reports whether a scheduled recompute is waiting for its quiet
// period to end.
func (r *Resizer) Pending() bool { return r.debounce.pendingRun() }

// Detach removes the signal listeners registered by New and cancels any
// pending scheduled recompute. The resizer remains usable.
func (r *Resizer) Detach() {
	r.mu.Lock()
	removers := r.removers
	r.removers = nil
	r.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	if r.debounce.cancel() {
		r.logger.Debug("pending recompute cancelled", "resizer", r.id)
	}
}

// Listener returns the bound listener registered with the signal source.
// Callers managing registration themselves can pass it to AddListener.
func (r *Resizer) Listener() func() { return r.listener }

func (r *Resizer) skip(reason string) {
	r.logger.Debug("recompute skipped", "resizer", r.id, "reason", reason)
	observability.Resizer().OnSkip(r.id, reason)
}
