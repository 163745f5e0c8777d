package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sizing"
	"github.com/matzehuels/boxfit/pkg/surface"
)

// Viewer styles
var (
	viewTargetStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	viewPaddingStyle = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// watchChrome is the number of terminal lines used by the header, the
// status line and the key help.
const watchChrome = 3

// =============================================================================
// Messages
// =============================================================================

// placementMsg carries an output delivered by the resizer callback.
type placementMsg sizing.Output

// reloadMsg reports a profile reload.
type reloadMsg struct {
	sizing string
	err    error
}

func waitPlacement(ch <-chan sizing.Output) tea.Cmd {
	return func() tea.Msg { return placementMsg(<-ch) }
}

func waitReload(ch <-chan reloadMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg { return <-ch }
}

// =============================================================================
// WatchModel - Live placement viewer
// =============================================================================

// WatchModel is the bubbletea model of the watch command. The terminal is
// the container: every window size change is forwarded to an in-memory
// window whose signals drive a resizer, and each debounced placement is
// drawn as a grid of cells.
type WatchModel struct {
	resizer  *resizer.Resizer
	window   *surface.Window
	registry *sizing.Registry

	names   []string
	sizing  string
	updates <-chan sizing.Output
	reloads <-chan reloadMsg

	out     sizing.Output
	applied bool
	status  string
	err     error
	width   int
	height  int
}

// newWatchModel binds a resizer to a fresh window. opts come first so the
// model's own target, signals and callback take precedence.
func newWatchModel(reg *sizing.Registry, sizingName string, width, height float64, reloads <-chan reloadMsg, opts ...resizer.Option) WatchModel {
	updates := make(chan sizing.Output, 1)
	window := surface.NewWindow(80, 24-watchChrome)
	target := window.AddChild("target", width, height)

	r := resizer.New(append(opts,
		resizer.WithTarget(target),
		resizer.WithSignals(window),
		resizer.WithCallback(latest(updates)),
	)...)

	return WatchModel{
		resizer:  r,
		window:   window,
		registry: reg,
		names:    reg.Names(),
		sizing:   sizingName,
		updates:  updates,
		reloads:  reloads,
		status:   "waiting for first placement",
	}
}

// latest returns a callback that keeps only the newest output in ch.
func latest(ch chan sizing.Output) resizer.Callback {
	return func(out sizing.Output) {
		for {
			select {
			case ch <- out:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(waitPlacement(m.updates), waitReload(m.reloads))
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.window.Resize(float64(msg.Width), float64(max(msg.Height-watchChrome, 1)))
		return m, nil

	case placementMsg:
		m.out = sizing.Output(msg)
		m.applied = true
		m.status = fmt.Sprintf("%gx%g at (%g, %g) scale %s",
			m.out.Width, m.out.Height, m.out.Left, m.out.Top, formatFloat(m.out.Scale))
		return m, waitPlacement(m.updates)

	case reloadMsg:
		m.err = msg.err
		if msg.err == nil {
			m.sizing = msg.sizing
			m.status = "profile reloaded"
		}
		return m, waitReload(m.reloads)
	}
	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.resizer.Detach()
		return m, tea.Quit

	case "s", "tab":
		m.sizing = m.nextSizing()
		h, err := m.registry.Lookup(m.sizing)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.resizer.Configure(func(c *resizer.Config) { c.Sizing = h })
		m.resizer.Schedule(nil)

	case "+", "=":
		m.resizer.Configure(func(c *resizer.Config) { adjustPadding(c, 1) })
		m.resizer.Schedule(nil)

	case "-", "_":
		m.resizer.Configure(func(c *resizer.Config) { adjustPadding(c, -1) })
		m.resizer.Schedule(nil)

	case "a":
		var active bool
		m.resizer.Configure(func(c *resizer.Config) {
			c.Active = !c.Active
			active = c.Active
		})
		if active {
			m.status = "active"
			m.resizer.Schedule(nil)
		} else {
			m.status = "paused"
		}

	case "r":
		m.window.Rotate()

	case " ", "enter":
		m.resizer.Schedule(nil)
	}
	return m, nil
}

func (m WatchModel) nextSizing() string {
	if len(m.names) == 0 {
		return m.sizing
	}
	for i, name := range m.names {
		if strings.EqualFold(name, m.sizing) {
			return m.names[(i+1)%len(m.names)]
		}
	}
	return m.names[0]
}

// adjustPadding moves every side by delta, never below zero.
func adjustPadding(c *resizer.Config, delta float64) {
	for _, p := range []*float64{&c.PaddingTop, &c.PaddingRight, &c.PaddingBottom, &c.PaddingLeft} {
		*p = math.Max(0, *p+delta)
	}
}

func (m WatchModel) View() string {
	var b strings.Builder

	cfg := m.resizer.Config()
	bounds := m.window.Bounds()

	b.WriteString(StyleTitle.Render(appName+" watch") + "  ")
	b.WriteString(StyleValue.Render(m.sizing) + "  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("container %gx%g  padding %g %g %g %g",
		bounds.Width, bounds.Height, cfg.PaddingTop, cfg.PaddingRight, cfg.PaddingBottom, cfg.PaddingLeft)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(viewErrorStyle.Render(m.err.Error()))
	default:
		b.WriteString(StyleNumber.Render(m.status))
	}
	b.WriteString("\n")

	if m.applied {
		b.WriteString(m.grid(cfg, bounds))
	}

	b.WriteString(StyleDim.Render("s sizing  +/- padding  a active  r rotate  space recompute  q quit"))
	return b.String()
}

// grid draws the container one cell per unit. Padding is dotted and the
// target is filled.
func (m WatchModel) grid(cfg resizer.Config, bounds resizer.Size) string {
	cols, rows := int(bounds.Width), int(bounds.Height)
	if m.width > 0 {
		cols = min(cols, m.width)
	}
	if cols <= 0 || rows <= 0 {
		return ""
	}

	box := resizer.BoxFromOutput(m.out)
	if !finite(box.Left, box.Top, box.Width, box.Height) {
		return viewErrorStyle.Render("placement is not finite") + "\n" + strings.Repeat("\n", rows-1)
	}

	left, right := int(math.Round(box.Left)), int(math.Round(box.Right()))
	top, bottom := int(math.Round(box.Top)), int(math.Round(box.Bottom()))
	padLeft, padRight := int(cfg.PaddingLeft), int(bounds.Width-cfg.PaddingRight)
	padTop, padBottom := int(cfg.PaddingTop), int(bounds.Height-cfg.PaddingBottom)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		kind, run := cellEmpty, 0
		for x := 0; x <= cols; x++ {
			next := cellEmpty
			switch {
			case x == cols:
				next = -1
			case x >= left && x < right && y >= top && y < bottom:
				next = cellTarget
			case x < padLeft || x >= padRight || y < padTop || y >= padBottom:
				next = cellPadding
			}
			if next == kind {
				run++
				continue
			}
			b.WriteString(renderCells(kind, run))
			kind, run = next, 1
		}
		b.WriteString("\n")
	}
	return b.String()
}

const (
	cellEmpty = iota
	cellPadding
	cellTarget
)

func renderCells(kind, n int) string {
	switch kind {
	case cellTarget:
		return viewTargetStyle.Render(strings.Repeat("█", n))
	case cellPadding:
		return viewPaddingStyle.Render(strings.Repeat("·", n))
	default:
		return strings.Repeat(" ", n)
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
