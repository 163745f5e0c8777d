package sink

import (
	"math"

	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// Padding holds the four paddings of a placement.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Placement is one sizing call together with its result.
type Placement struct {
	Name      string        `json:"name,omitempty"`
	Sizing    string        `json:"sizing"`
	Container resizer.Size  `json:"container"`
	Padding   Padding       `json:"padding"`
	Target    resizer.Size  `json:"target"`
	Output    sizing.Output `json:"output"`
}

// NewPlacement records the input and output of the handler called sizingName.
func NewPlacement(sizingName string, in sizing.Input, out sizing.Output) Placement {
	return Placement{
		Sizing:    sizingName,
		Container: resizer.Size{Width: in.ContainerWidth, Height: in.ContainerHeight},
		Padding: Padding{
			Top:    in.PaddingTop,
			Right:  in.PaddingRight,
			Bottom: in.PaddingBottom,
			Left:   in.PaddingLeft,
		},
		Target: resizer.Size{Width: in.TargetWidth, Height: in.TargetHeight},
		Output: out,
	}
}

// Box returns the visual box of the output.
func (p Placement) Box() resizer.Box { return resizer.BoxFromOutput(p.Output) }

// Available returns the padded area of the container as a box.
func (p Placement) Available() resizer.Box {
	return resizer.Box{
		Left:   p.Padding.Left,
		Top:    p.Padding.Top,
		Width:  p.Container.Width - p.Padding.Left - p.Padding.Right,
		Height: p.Container.Height - p.Padding.Top - p.Padding.Bottom,
	}
}

// Finite reports whether every output value is a finite number.
func (p Placement) Finite() bool {
	for _, v := range []float64{p.Output.Width, p.Output.Height, p.Output.Left, p.Output.Top, p.Output.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
