// Package sink renders a computed placement to output formats.
//
// A [Placement] bundles everything that went into one sizing call (handler
// name, container, padding, target size) with its [sizing.Output]. This
// package provides renderers for:
//
//   - SVG: the container, its padded area and the placed target
//   - JSON: the placement record, for scripts and the HTTP API
//
// Basic usage:
//
//	p := sink.NewPlacement("contain", in, sizing.Contain.Size(in))
//	svg := sink.RenderSVG(p, sink.WithLabels(), sink.WithTitle("desktop"))
//
// # SVG Options
//
//   - [WithLabels]: annotate the target with its size and scale
//   - [WithTitle]: draw a caption above the container
//   - [WithMargin]: whitespace around the drawing
//
// Non-finite outputs (a zero target under a ratio-based handler) cannot be
// drawn or encoded: RenderSVG omits the target rectangle and RenderJSON
// returns an INVALID_DIMENSION error.
package sink
