package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/profile"
	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sink"
	"github.com/matzehuels/boxfit/pkg/sizing"
	"github.com/matzehuels/boxfit/pkg/sizing/script"
	"github.com/matzehuels/boxfit/pkg/surface"
)

// =============================================================================
// Profile Flags
// =============================================================================

// profileFlags are the flags shared by commands that build a placement from
// a profile. Flags that were set on the command line override the profile.
type profileFlags struct {
	config        string
	script        string
	sizing        string
	size          string
	padding       float64
	paddingTop    float64
	paddingRight  float64
	paddingBottom float64
	paddingLeft   float64
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "profile file (TOML)")
	cmd.Flags().StringVar(&f.script, "script", "", "Lua sizing script; selected unless --sizing is given")
	cmd.Flags().StringVarP(&f.sizing, "sizing", "s", "", "sizing handler (see 'boxfit sizings')")
	cmd.Flags().StringVar(&f.size, "size", "", "desired target size, WIDTHxHEIGHT")
	cmd.Flags().Float64VarP(&f.padding, "padding", "p", 0, "padding on every side")
	cmd.Flags().Float64Var(&f.paddingTop, "padding-top", 0, "top padding")
	cmd.Flags().Float64Var(&f.paddingRight, "padding-right", 0, "right padding")
	cmd.Flags().Float64Var(&f.paddingBottom, "padding-bottom", 0, "bottom padding")
	cmd.Flags().Float64Var(&f.paddingLeft, "padding-left", 0, "left padding")
}

// setup holds what a command needs to compute placements.
type setup struct {
	profile  *profile.Profile
	registry *sizing.Registry
	script   *script.Handler
}

// Close releases the Lua state, if a script was loaded.
func (s *setup) Close() {
	if s.script != nil {
		s.script.Close()
	}
}

// load reads the profile, registers the script and applies flag overrides.
// The resulting profile is validated.
func (f *profileFlags) load(ctx context.Context, cmd *cobra.Command) (*setup, error) {
	logger := loggerFromContext(ctx)

	s := &setup{profile: profile.Default(), registry: sizing.NewBuiltinRegistry()}
	if f.config != "" {
		p, err := profile.Load(f.config)
		if err != nil {
			return nil, err
		}
		s.profile = p
		logger.Debug("profile loaded", "path", f.config, "sizing", p.Sizing)
	}

	scriptPath := f.script
	if scriptPath == "" {
		scriptPath = s.profile.ScriptPath()
	}
	if scriptPath != "" {
		h, err := script.Load(scriptPath, script.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.registry.Register(h.Info(), h); err != nil {
			h.Close()
			return nil, err
		}
		s.script = h
		if f.script != "" && !cmd.Flags().Changed("sizing") {
			s.profile.Sizing = h.Name()
		}
		logger.Debug("script registered", "path", scriptPath, "name", h.Name())
	}

	if err := f.apply(cmd, s.profile); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.profile.Validate(s.registry); err != nil {
		s.Close()
		return nil, err
	}
	if info, ok := s.registry.Info(s.profile.Sizing); ok {
		s.profile.Sizing = info.Name
	}
	return s, nil
}

// apply copies the flags that were set into p.
func (f *profileFlags) apply(cmd *cobra.Command, p *profile.Profile) error {
	changed := cmd.Flags().Changed

	if changed("sizing") {
		p.Sizing = f.sizing
	}
	if changed("size") {
		w, h, err := parseSize(f.size)
		if err != nil {
			return fmt.Errorf("--size: %w", err)
		}
		p.Width, p.Height = w, h
	}
	if changed("padding") {
		p.Padding = f.padding
		p.PaddingTop, p.PaddingRight, p.PaddingBottom, p.PaddingLeft = nil, nil, nil, nil
	}
	for _, side := range []struct {
		flag string
		dst  **float64
		v    float64
	}{
		{"padding-top", &p.PaddingTop, f.paddingTop},
		{"padding-right", &p.PaddingRight, f.paddingRight},
		{"padding-bottom", &p.PaddingBottom, f.paddingBottom},
		{"padding-left", &p.PaddingLeft, f.paddingLeft},
	} {
		if changed(side.flag) {
			v := side.v
			*side.dst = &v
		}
	}
	return nil
}

// parseSize parses "WIDTHxHEIGHT" (e.g. "800x600").
func parseSize(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "size %q must look like WIDTHxHEIGHT", s)
	}

	var dims [2]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "size %q", s)
		}
		name := "width"
		if i == 1 {
			name = "height"
		}
		if err := errors.ValidateDimension(name, v); err != nil {
			return 0, 0, err
		}
		dims[i] = v
	}
	return dims[0], dims[1], nil
}

// =============================================================================
// Placement
// =============================================================================

// computePlacement places the profile's target in a container of the given
// size by running one synchronous recompute through a resizer bound to
// in-memory surfaces.
func computePlacement(ctx context.Context, p *profile.Profile, reg *sizing.Registry, containerWidth, containerHeight float64) (sink.Placement, error) {
	opts, err := p.Options(reg)
	if err != nil {
		return sink.Placement{}, err
	}

	window := surface.NewWindow(containerWidth, containerHeight)
	target := window.AddChild("target", p.Width, p.Height)

	r := resizer.New(append(opts,
		resizer.WithTarget(target),
		resizer.WithActive(false),
		resizer.WithAutoResize(false),
		resizer.WithLogger(loggerFromContext(ctx)),
	)...)
	defer r.Detach()

	var (
		out     sizing.Output
		applied bool
	)
	r.Configure(func(c *resizer.Config) { c.Active = true })
	r.RecomputeSync(func(o sizing.Output) {
		out = o
		applied = true
	})
	if !applied {
		return sink.Placement{}, errors.New(errors.ErrCodeInternal, "resizer %s did not apply a placement", r.ID())
	}

	return sink.NewPlacement(p.Sizing, p.Input(containerWidth, containerHeight), out), nil
}
