// Package sizing computes where a target rectangle goes inside a container.
//
// # Overview
//
// A sizing [Handler] is a pure function from an [Input] (container size,
// four paddings and the target's desired size) to an [Output] (resolved
// width, height, left offset, top offset and uniform scale). Handlers hold no
// state and perform no I/O, so the same handler value can serve any number of
// resizers concurrently.
//
// Every built-in handler first derives the available area:
//
//	availableWidth  = containerWidth  - paddingLeft - paddingRight
//	availableHeight = containerHeight - paddingTop  - paddingBottom
//
// # Built-in Handlers
//
//   - [Fill]: stretch to the available area, scale 1
//   - [FixedWidth]: fill the available area, scale = availableWidth / targetWidth
//   - [FixedHeight]: fill the available area, scale = availableHeight / targetHeight
//   - [Semifixed]: FixedWidth or FixedHeight, whichever axis constrains the target
//   - [Contain]: scale the target to fit, preserving aspect, centered on the free axis
//   - [Center]: keep the target's size and center it, scale 1
//
// [Semifixed] and [Contain] share one ratio test: when
// availableWidth/availableHeight is smaller than targetWidth/targetHeight the
// width is the constraining axis; otherwise (including equality) the height is.
//
// # Degenerate Input
//
// Handlers apply IEEE-754 arithmetic without guards. A zero target side (or
// a zero available height under the ratio test) yields ±Inf or NaN in the
// output. Callers that accept sizes from users validate them first; see
// [github.com/matzehuels/boxfit/pkg/errors.ValidateRatioTarget].
//
// # Custom Handlers
//
// Any value implementing [Handler] can be used in place of a built-in. Plain
// functions are adapted with [HandlerFunc]:
//
//	topLeft := sizing.HandlerFunc(func(in sizing.Input) sizing.Output {
//	    return sizing.Output{
//	        Width: in.TargetWidth, Height: in.TargetHeight,
//	        Left: in.PaddingLeft, Top: in.PaddingTop, Scale: 1,
//	    }
//	})
//
// # Registry
//
// A [Registry] resolves handlers by name, the way a settings page or a CLI
// flag selects one. [Default] holds the six built-ins under their canonical
// names (fill, fixedWidth, fixedHeight, semifixed, contain, center); lookups
// are case-insensitive.
package sizing
