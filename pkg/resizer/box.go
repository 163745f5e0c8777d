package resizer

import "github.com/matzehuels/boxfit/pkg/sizing"

// Size is the layout box of a container as reported by its element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landscape reports whether the box is wider than it is tall.
func (s Size) Landscape() bool { return s.Width > s.Height }

// Box is the visual box written to a target: rendered width and height,
// plus the offsets applied on its left and top edges.
// All values are in the container's units.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// BoxFromOutput extracts the visual box from a sizing result.
func BoxFromOutput(out sizing.Output) Box {
	return Box{Width: out.Width, Height: out.Height, Left: out.Left, Top: out.Top}
}

// Right returns the horizontal coordinate of the box's right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the vertical coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return b.Top + b.Height/2 }
