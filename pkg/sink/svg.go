package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	defaultMargin = 20.0
	titleHeight   = 24.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels bool
	title  string
	margin float64
}

func WithLabels() SVGOption            { return func(r *svgRenderer) { r.labels = true } }
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }
func WithMargin(margin float64) SVGOption {
	return func(r *svgRenderer) {
		if margin >= 0 {
			r.margin = margin
		}
	}
}

// RenderSVG draws the container, its padded area and the target box.
// The drawing grows to include a target that overflows the container.
func RenderSVG(p Placement, opts ...SVGOption) []byte {
	r := svgRenderer{margin: defaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	box := p.Box()
	finite := p.Finite()

	minX, minY := 0.0, 0.0
	maxX, maxY := p.Container.Width, p.Container.Height
	if finite {
		minX, minY = min(minX, box.Left), min(minY, box.Top)
		maxX, maxY = max(maxX, box.Right()), max(maxY, box.Bottom())
	}

	top := minY - r.margin
	if r.title != "" {
		top -= titleHeight
	}
	left := minX - r.margin
	width := maxX - minX + 2*r.margin
	height := maxY - top + r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		left, top, width, height, width, height)
	buf.WriteString(`  <style>.container{fill:#f6f8fa;stroke:#57606a;stroke-width:2}` +
		`.available{fill:none;stroke:#8c959f;stroke-dasharray:6 4}` +
		`.target{fill:#0969da;fill-opacity:0.35;stroke:#0969da;stroke-width:2}` +
		`text{font-family:monospace;font-size:12px;fill:#24292f}</style>` + "\n")

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="%.1f">%s</text>`+"\n",
			minX, minY-r.margin/2-titleHeight/2, escapeXML(r.title))
	}

	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%.1f" height="%.1f"/>`+"\n",
		p.Container.Width, p.Container.Height)

	avail := p.Available()
	if avail.Width > 0 && avail.Height > 0 {
		fmt.Fprintf(&buf, `  <rect class="available" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			avail.Left, avail.Top, avail.Width, avail.Height)
	}

	if !finite {
		buf.WriteString("  <!-- target box is not finite -->\n")
	} else if box.Width >= 0 && box.Height >= 0 {
		fmt.Fprintf(&buf, `  <rect class="target" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			box.Left, box.Top, box.Width, box.Height)
		if r.labels {
			fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
				box.CenterX(), box.CenterY(), escapeXML(label(p)))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func label(p Placement) string {
	return fmt.Sprintf("%s %gx%g ×%g", p.Sizing, p.Output.Width, p.Output.Height, p.Output.Scale)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
