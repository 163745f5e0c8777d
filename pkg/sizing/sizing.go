package sizing

// Input is the geometry handed to a sizing handler.
// All values share one unit (pixels, terminal cells, ...).
type Input struct {
	PaddingTop      float64 `json:"paddingTop"`
	PaddingRight    float64 `json:"paddingRight"`
	PaddingBottom   float64 `json:"paddingBottom"`
	PaddingLeft     float64 `json:"paddingLeft"`
	ContainerWidth  float64 `json:"containerWidth"`
	ContainerHeight float64 `json:"containerHeight"`
	TargetWidth     float64 `json:"targetWidth"`
	TargetHeight    float64 `json:"targetHeight"`
}

// AvailableWidth returns the container width left after horizontal padding.
func (in Input) AvailableWidth() float64 {
	return in.ContainerWidth - in.PaddingLeft - in.PaddingRight
}

// AvailableHeight returns the container height left after vertical padding.
func (in Input) AvailableHeight() float64 {
	return in.ContainerHeight - in.PaddingTop - in.PaddingBottom
}

// widthConstrained reports whether the available area is relatively
// narrower than the target, i.e. the width limits how far the target scales.
func (in Input) widthConstrained() bool {
	availableRatio := in.AvailableWidth() / in.AvailableHeight()
	targetRatio := in.TargetWidth / in.TargetHeight
	return availableRatio < targetRatio
}

// Output is the placement computed by a sizing handler.
type Output struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Scale  float64 `json:"scale"`
}

// Handler maps an Input to an Output. Implementations must be pure.
type Handler interface {
	Size(in Input) Output
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(in Input) Output

// Size calls f(in).
func (f HandlerFunc) Size(in Input) Output { return f(in) }

// Built-in handlers.
var (
	Fill        Handler = HandlerFunc(fill)
	FixedWidth  Handler = HandlerFunc(fixedWidth)
	FixedHeight Handler = HandlerFunc(fixedHeight)
	Semifixed   Handler = HandlerFunc(semifixed)
	Contain     Handler = HandlerFunc(contain)
	Center      Handler = HandlerFunc(center)
)

func fill(in Input) Output {
	return Output{
		Width:  in.AvailableWidth(),
		Height: in.AvailableHeight(),
		Left:   in.PaddingLeft,
		Top:    in.PaddingTop,
		Scale:  1,
	}
}

func fixedWidth(in Input) Output {
	out := fill(in)
	out.Scale = out.Width / in.TargetWidth
	return out
}

func fixedHeight(in Input) Output {
	out := fill(in)
	out.Scale = out.Height / in.TargetHeight
	return out
}

func semifixed(in Input) Output {
	if in.widthConstrained() {
		return fixedWidth(in)
	}
	return fixedHeight(in)
}

func contain(in Input) Output {
	availableWidth, availableHeight := in.AvailableWidth(), in.AvailableHeight()

	if in.widthConstrained() {
		scale := availableWidth / in.TargetWidth
		height := in.TargetHeight * scale
		return Output{
			Width:  availableWidth,
			Height: height,
			Left:   in.PaddingLeft,
			Top:    (availableHeight-height)/2 + in.PaddingTop,
			Scale:  scale,
		}
	}

	scale := availableHeight / in.TargetHeight
	width := in.TargetWidth * scale
	return Output{
		Width:  width,
		Height: availableHeight,
		Left:   (availableWidth-width)/2 + in.PaddingLeft,
		Top:    in.PaddingTop,
		Scale:  scale,
	}
}

func center(in Input) Output {
	return Output{
		Width:  in.TargetWidth,
		Height: in.TargetHeight,
		Left:   (in.AvailableWidth()-in.TargetWidth)/2 + in.PaddingLeft,
		Top:    (in.AvailableHeight()-in.TargetHeight)/2 + in.PaddingTop,
		Scale:  1,
	}
}
