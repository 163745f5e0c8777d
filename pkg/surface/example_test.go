package surface_test

import (
	"fmt"

	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sizing"
	"github.com/matzehuels/boxfit/pkg/surface"
)

func ExampleWindow() {
	window := surface.NewWindow(800, 600)
	target := window.AddChild("target", 400, 200)

	r := resizer.New(
		resizer.WithTarget(target),
		resizer.WithSize(400, 200),
		resizer.WithSizing(sizing.Contain),
		resizer.WithSignals(window),
		resizer.WithActive(false),
	)
	defer r.Detach()

	r.Configure(func(c *resizer.Config) { c.Active = true })
	r.RecomputeSync(func(out sizing.Output) {
		fmt.Printf("%gx%g at (%g, %g)\n", out.Width, out.Height, out.Left, out.Top)
	})

	window.Resize(600, 800)
	r.RecomputeSync(func(out sizing.Output) {
		fmt.Printf("%gx%g at (%g, %g)\n", out.Width, out.Height, out.Left, out.Top)
	})
	// Output:
	// 800x400 at (0, 100)
	// 600x300 at (0, 250)
}
