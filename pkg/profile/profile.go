// Package profile loads resizer configuration and batch scenarios from TOML.
//
// A profile mirrors the construction options of a resizer:
//
//	sizing = "contain"
//	width = 480
//	height = 320
//	padding = 10
//	padding_top = 20
//	debounce = "100ms"
//
//	[[scenario]]
//	name = "desktop"
//	container_width = 800
//	container_height = 600
//
// Omitted fields take the same defaults as resizer.New.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSizing is the handler name used when a profile names none.
	DefaultSizing = sizing.DefaultName

	// DefaultFilename is the profile looked up in the working directory.
	DefaultFilename = "boxfit.toml"
)

// DefaultDebounce is the quiet period used when a profile names none.
var DefaultDebounce = resizer.DefaultDebounce.String()

// =============================================================================
// Types
// =============================================================================

// Profile is a decoded configuration file.
type Profile struct {
	Sizing string  `toml:"sizing" json:"sizing"`
	Script string  `toml:"script,omitempty" json:"script,omitempty"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	Padding       float64  `toml:"padding" json:"padding"`
	PaddingTop    *float64 `toml:"padding_top,omitempty" json:"padding_top,omitempty"`
	PaddingRight  *float64 `toml:"padding_right,omitempty" json:"padding_right,omitempty"`
	PaddingBottom *float64 `toml:"padding_bottom,omitempty" json:"padding_bottom,omitempty"`
	PaddingLeft   *float64 `toml:"padding_left,omitempty" json:"padding_left,omitempty"`

	Active     *bool  `toml:"active,omitempty" json:"active,omitempty"`
	AutoResize *bool  `toml:"auto_resize,omitempty" json:"auto_resize,omitempty"`
	Debounce   string `toml:"debounce" json:"debounce"`

	Scenarios []Scenario `toml:"scenario" json:"scenarios,omitempty"`

	// dir is the directory of the file the profile was loaded from.
	dir string
}

// Scenario is one container size to evaluate in batch mode.
type Scenario struct {
	Name            string  `toml:"name" json:"name"`
	ContainerWidth  float64 `toml:"container_width" json:"container_width"`
	ContainerHeight float64 `toml:"container_height" json:"container_height"`
	// Sizing overrides the profile's handler for this scenario.
	Sizing string `toml:"sizing,omitempty" json:"sizing,omitempty"`
}

// Default returns a profile with every field at its default.
func Default() *Profile {
	return &Profile{Sizing: DefaultSizing, Debounce: DefaultDebounce}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads and decodes the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read profile %s", path)
	}

	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Decode parses TOML profile data. Unknown keys are rejected.
func Decode(data []byte) (*Profile, error) {
	p := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode profile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	if strings.TrimSpace(p.Sizing) == "" {
		p.Sizing = DefaultSizing
	}
	if strings.TrimSpace(p.Debounce) == "" {
		p.Debounce = DefaultDebounce
	}
	return p, nil
}

// Encode writes the profile as TOML.
func (p *Profile) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode profile")
	}
	return buf.Bytes(), nil
}

// ScriptPath returns the Lua script path, resolved against the directory of
// the profile file when relative. It is empty when no script is configured.
func (p *Profile) ScriptPath() string {
	if p.Script == "" || filepath.IsAbs(p.Script) || p.dir == "" {
		return p.Script
	}
	return filepath.Join(p.dir, p.Script)
}

// =============================================================================
// Resolution
// =============================================================================

// Paddings returns the resolved top, right, bottom and left paddings.
func (p *Profile) Paddings() (top, right, bottom, left float64) {
	side := func(v *float64) float64 {
		if v != nil {
			return *v
		}
		return p.Padding
	}
	return side(p.PaddingTop), side(p.PaddingRight), side(p.PaddingBottom), side(p.PaddingLeft)
}

// IsActive reports the active flag, true when omitted.
func (p *Profile) IsActive() bool { return p.Active == nil || *p.Active }

// IsAutoResize reports the auto-resize flag, true when omitted.
func (p *Profile) IsAutoResize() bool { return p.AutoResize == nil || *p.AutoResize }

// DebounceDuration parses the debounce field.
func (p *Profile) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(p.Debounce)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "debounce %q", p.Debounce)
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "debounce must be positive (got %s)", p.Debounce)
	}
	return d, nil
}

// Input builds a sizing input for a container of the given size.
func (p *Profile) Input(containerWidth, containerHeight float64) sizing.Input {
	top, right, bottom, left := p.Paddings()
	return sizing.Input{
		PaddingTop:      top,
		PaddingRight:    right,
		PaddingBottom:   bottom,
		PaddingLeft:     left,
		ContainerWidth:  containerWidth,
		ContainerHeight: containerHeight,
		TargetWidth:     p.Width,
		TargetHeight:    p.Height,
	}
}

// ScenarioSizing returns the handler name for sc.
func (p *Profile) ScenarioSizing(sc Scenario) string {
	if strings.TrimSpace(sc.Sizing) != "" {
		return sc.Sizing
	}
	return p.Sizing
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks every value against reg. Ratio-based handlers require a
// non-zero target size.
func (p *Profile) Validate(reg *sizing.Registry) error {
	if err := validateSizing(reg, p.Sizing, p.Width, p.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", p.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", p.Height); err != nil {
		return err
	}

	top, right, bottom, left := p.Paddings()
	for _, side := range []struct {
		name string
		v    float64
	}{{"top", top}, {"right", right}, {"bottom", bottom}, {"left", left}} {
		if err := errors.ValidatePadding(side.name, side.v); err != nil {
			return err
		}
	}

	if _, err := p.DebounceDuration(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Scenarios))
	for i, sc := range p.Scenarios {
		if strings.TrimSpace(sc.Name) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "scenario %d has no name", i+1)
		}
		if seen[sc.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true

		if err := errors.ValidateDimension(sc.Name+" container_width", sc.ContainerWidth); err != nil {
			return err
		}
		if err := errors.ValidateDimension(sc.Name+" container_height", sc.ContainerHeight); err != nil {
			return err
		}
		if err := validateSizing(reg, p.ScenarioSizing(sc), p.Width, p.Height); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return nil
}

func validateSizing(reg *sizing.Registry, name string, width, height float64) error {
	if _, err := reg.Lookup(name); err != nil {
		return err
	}
	if info, ok := reg.Info(name); ok && info.RatioBased {
		return errors.ValidateRatioTarget(width, height)
	}
	return nil
}

// Options converts the profile into resizer options. Collaborators
// (target, container, signals, clock, logger) are left to the caller.
func (p *Profile) Options(reg *sizing.Registry) ([]resizer.Option, error) {
	h, err := reg.Lookup(p.Sizing)
	if err != nil {
		return nil, err
	}
	d, err := p.DebounceDuration()
	if err != nil {
		return nil, err
	}

	opts := []resizer.Option{
		resizer.WithSizing(h),
		resizer.WithSize(p.Width, p.Height),
		resizer.WithPadding(p.Padding),
		resizer.WithActive(p.IsActive()),
		resizer.WithAutoResize(p.IsAutoResize()),
		resizer.WithDebounce(d),
	}
	if p.PaddingTop != nil {
		opts = append(opts, resizer.WithPaddingTop(*p.PaddingTop))
	}
	if p.PaddingRight != nil {
		opts = append(opts, resizer.WithPaddingRight(*p.PaddingRight))
	}
	if p.PaddingBottom != nil {
		opts = append(opts, resizer.WithPaddingBottom(*p.PaddingBottom))
	}
	if p.PaddingLeft != nil {
		opts = append(opts, resizer.WithPaddingLeft(*p.PaddingLeft))
	}
	return opts, nil
}

// Apply copies the profile's values into an existing resizer configuration,
// leaving collaborators and callbacks untouched.
func (p *Profile) Apply(reg *sizing.Registry, cfg *resizer.Config) error {
	h, err := reg.Lookup(p.Sizing)
	if err != nil {
		return err
	}
	cfg.Sizing = h
	cfg.Width, cfg.Height = p.Width, p.Height
	cfg.PaddingTop, cfg.PaddingRight, cfg.PaddingBottom, cfg.PaddingLeft = p.Paddings()
	cfg.Active = p.IsActive()
	return nil
}
