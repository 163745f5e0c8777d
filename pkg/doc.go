// Package pkg provides the libraries behind boxfit.
//
// # Overview
//
// Boxfit places a target box inside a container. Given the container's size,
// the padding on each side and the target's intrinsic size, a sizing handler
// computes the target's rendered width and height, its left and top offsets
// and a scale factor. A resize controller keeps that placement in sync while
// the container changes size.
//
// The pkg directory is organized into three areas:
//
//  1. Domain logic: [sizing], [resizer]
//  2. Configuration and collaborators: [profile], [surface]
//  3. Output and plumbing: [sink], [httputil], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	container resize / orientation signal
//	         ↓
//	    [resizer] debounces, then measures the container
//	         ↓
//	    [sizing] handler computes the placement
//	         ↓
//	    [resizer] writes the box to the target, calls callbacks
//	         ↓
//	    [sink] renders SVG or JSON (CLI, HTTP API)
//
// # Quick Start
//
// Place a target once, without a controller:
//
//	out := sizing.Contain.Size(sizing.Input{
//	    ContainerWidth: 800, ContainerHeight: 600,
//	    TargetWidth: 400, TargetHeight: 200,
//	})
//	// out: 800x400 at (0, 100), scale 2
//
// Keep a target in sync with a resizable window:
//
//	window := surface.NewWindow(800, 600)
//	target := window.AddChild("target", 400, 200)
//
//	r := resizer.New(
//	    resizer.WithTarget(target),
//	    resizer.WithSignals(window),
//	    resizer.WithSizing(sizing.Contain),
//	    resizer.WithSize(400, 200),
//	)
//	defer r.Detach()
//
//	window.Resize(1024, 768) // recomputed after the debounce period
//
// # Main Packages
//
// [sizing] - The six built-in handlers (fill, fixedWidth, fixedHeight,
// semifixed, contain, center), a named registry and, in [sizing/script],
// handlers written in Lua.
//
// [resizer] - The resize controller: configuration, trailing-edge debounce
// and synchronous recompute.
//
// [surface] - In-memory elements and a window that emits resize and
// orientation signals.
//
// [profile] - TOML profiles with batch scenarios, and a file watcher that
// reloads them.
//
// [sink] - SVG and JSON renderings of placements.
//
// [sizing]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/sizing
// [sizing/script]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/sizing/script
// [resizer]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/resizer
// [surface]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/surface
// [profile]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/profile
// [sink]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/sink
// [httputil]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxfit/pkg/errors
package pkg
