package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/profile"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    float64
		wantErr errors.Code
	}{
		{in: "800x600", w: 800, h: 600},
		{in: " 1920X1080 ", w: 1920, h: 1080},
		{in: "12.5x0", w: 12.5, h: 0},
		{in: "800", wantErr: errors.ErrCodeInvalidInput},
		{in: "800x600x1", wantErr: errors.ErrCodeInvalidInput},
		{in: "axb", wantErr: errors.ErrCodeInvalidInput},
		{in: "-1x10", wantErr: errors.ErrCodeInvalidDimension},
		{in: "10xNaN", wantErr: errors.ErrCodeInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseSize(%q) error = %v, want %s", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSize(%q): %v", tt.in, err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseSize(%q) = %v, %v; want %v, %v", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

// flagCommand returns a command with profile flags parsed from args.
func flagCommand(t *testing.T, args ...string) (*cobra.Command, *profileFlags) {
	t.Helper()
	var f profileFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cmd.SetContext(context.Background())
	return cmd, &f
}

func TestProfileFlagsApply(t *testing.T) {
	top := 20.0
	p := profile.Default()
	p.Sizing = "contain"
	p.Padding = 5
	p.PaddingTop = &top

	cmd, f := flagCommand(t, "--size", "400x200", "--padding", "10", "--padding-left", "3")
	if err := f.apply(cmd, p); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if p.Sizing != "contain" {
		t.Errorf("Sizing = %q, unchanged flag should keep profile value", p.Sizing)
	}
	if p.Width != 400 || p.Height != 200 {
		t.Errorf("size = %vx%v", p.Width, p.Height)
	}
	gotTop, gotRight, gotBottom, gotLeft := p.Paddings()
	if gotTop != 10 || gotRight != 10 || gotBottom != 10 || gotLeft != 3 {
		t.Errorf("paddings = %v %v %v %v, want 10 10 10 3", gotTop, gotRight, gotBottom, gotLeft)
	}
}

func TestProfileFlagsApplyBadSize(t *testing.T) {
	cmd, f := flagCommand(t, "--size", "wide")
	if err := f.apply(cmd, profile.Default()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("apply error = %v, want INVALID_INPUT", err)
	}
}

func TestProfileFlagsLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxfit.toml")
	writeFile(t, path, "sizing = \"fill\"\nwidth = 40\nheight = 20\nscript = \"corner.lua\"\n")
	writeFile(t, filepath.Join(dir, "corner.lua"), cornerScript)

	t.Run("profile with script", func(t *testing.T) {
		cmd, f := flagCommand(t, "--config", path, "--sizing", "CONTAIN")
		s, err := f.load(cmd.Context(), cmd)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		defer s.Close()

		if s.profile.Sizing != "contain" {
			t.Errorf("Sizing = %q, want canonical contain", s.profile.Sizing)
		}
		if _, err := s.registry.Lookup("corner"); err != nil {
			t.Errorf("script not registered: %v", err)
		}
	})

	t.Run("script flag selects script", func(t *testing.T) {
		cmd, f := flagCommand(t, "--script", filepath.Join(dir, "corner.lua"), "--size", "40x20")
		s, err := f.load(cmd.Context(), cmd)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		defer s.Close()

		if s.profile.Sizing != "corner" {
			t.Errorf("Sizing = %q, want corner", s.profile.Sizing)
		}
	})

	t.Run("ratio sizing with zero target", func(t *testing.T) {
		cmd, f := flagCommand(t, "--sizing", "contain")
		if _, err := f.load(cmd.Context(), cmd); !errors.Is(err, errors.ErrCodeInvalidDimension) {
			t.Errorf("load error = %v, want INVALID_DIMENSION", err)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		cmd, f := flagCommand(t, "--config", filepath.Join(dir, "missing.toml"))
		if _, err := f.load(cmd.Context(), cmd); !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("load error = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestComputePlacement(t *testing.T) {
	ctx := context.Background()
	reg := sizing.NewBuiltinRegistry()

	tests := []struct {
		name    string
		sizing  string
		padding float64
		cw, ch  float64
		want    sizing.Output
	}{
		{name: "contain", sizing: "contain", cw: 800, ch: 600, want: sizing.Output{Width: 800, Height: 400, Top: 100, Scale: 2}},
		{name: "center", sizing: "center", cw: 800, ch: 600, want: sizing.Output{Width: 400, Height: 200, Left: 200, Top: 200, Scale: 1}},
		{name: "fill padded", sizing: "fill", padding: 10, cw: 100, ch: 100, want: sizing.Output{Width: 80, Height: 80, Left: 10, Top: 10, Scale: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.Default()
			p.Sizing = tt.sizing
			p.Width, p.Height = 400, 200
			p.Padding = tt.padding

			got, err := computePlacement(ctx, p, reg, tt.cw, tt.ch)
			if err != nil {
				t.Fatalf("computePlacement: %v", err)
			}
			if got.Output != tt.want {
				t.Errorf("Output = %+v, want %+v", got.Output, tt.want)
			}
			if got.Sizing != tt.sizing || got.Container.Width != tt.cw || got.Padding.Left != tt.padding {
				t.Errorf("placement = %+v", got)
			}
		})
	}
}

func TestComputePlacementIgnoresInactiveProfile(t *testing.T) {
	inactive := false
	p := profile.Default()
	p.Active = &inactive
	p.Width, p.Height = 10, 10

	got, err := computePlacement(context.Background(), p, sizing.NewBuiltinRegistry(), 30, 30)
	if err != nil {
		t.Fatalf("computePlacement: %v", err)
	}
	if got.Output.Left != 10 {
		t.Errorf("Left = %v, want 10", got.Output.Left)
	}
}

const cornerScript = `
description = "pin to the top-left corner"

function size(input)
  return {
    width = input.targetWidth,
    height = input.targetHeight,
    left = input.paddingLeft,
    top = input.paddingTop,
  }
end
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
