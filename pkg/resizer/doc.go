// Package resizer keeps a target element sized and positioned inside its
// container.
//
// A [Resizer] owns one [Config]: the target and container handles, the
// desired target size, four paddings, the active [sizing.Handler], an
// optional callback and an active flag. [Resizer.RecomputeSync] reads the
// container bounds, runs the handler, writes the resulting [Box] to the
// target and then notifies callbacks. [Resizer.Schedule] is the debounced
// form: calls that arrive within the quiet period collapse into a single
// recompute on the trailing edge, carrying the extra callback of the last
// call only.
//
// # Collaborators
//
// The package does not render anything itself. Elements are reached through
// the [Element] interface and viewport events through [SignalSource]; see
// package surface for in-memory implementations.
//
// # Construction
//
//	r := resizer.New(
//	    resizer.WithTarget(target),
//	    resizer.WithSize(400, 200),
//	    resizer.WithSizing(sizing.Contain),
//	    resizer.WithPadding(10),
//	    resizer.WithSignals(window),
//	)
//	defer r.Detach()
//
// Defaults are resolved once in New: the container falls back to the
// target's parent and each side padding falls back to the shared padding.
// Later changes go through [Resizer.Configure] and are never re-resolved.
//
// # Concurrency
//
// Timers fire on their own goroutines. Configuration and debounce state are
// guarded internally and callbacks run with no lock held, so a callback may
// call Configure or Schedule; the change applies to the next recompute.
package resizer
