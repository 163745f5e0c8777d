package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/profile"
	"github.com/matzehuels/boxfit/pkg/sink"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// execute runs the root command with args and a discarded logger.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"compute", "sizings", "batch", "watch", "serve"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestComputeCommandJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "placement.json")

	err := execute(t, "compute", "--container", "800x600", "--size", "400x200", "-s", "contain", "-f", "json", "-o", out)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var p sink.Placement
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := sizing.Output{Width: 800, Height: 400, Left: 0, Top: 100, Scale: 2}
	if p.Sizing != "contain" || p.Output != want {
		t.Errorf("placement = %+v", p)
	}
}

func TestComputeCommandSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "placement.svg")

	if err := execute(t, "compute", "--container", "100x100", "--size", "50x50", "-s", "fixedWidth", "-p", "10", "-f", "svg", "-o", out); err != nil {
		t.Fatalf("compute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("output is not SVG: %.40s", data)
	}
}

func TestComputeCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"compute", "--container", "10x10", "-f", "yaml"}, errors.ErrCodeInvalidFormat},
		{"bad container", []string{"compute", "--container", "ten"}, errors.ErrCodeInvalidInput},
		{"unknown sizing", []string{"compute", "--container", "10x10", "-s", "cover"}, errors.ErrCodeInvalidSizing},
		{"negative padding", []string{"compute", "--container", "10x10", "--padding-top", "-2"}, errors.ErrCodeInvalidPadding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestComputeCommandRequiresContainer(t *testing.T) {
	if err := execute(t, "compute"); err == nil {
		t.Error("compute without --container should fail")
	}
}

func TestWriteComputeOutputText(t *testing.T) {
	p := sink.NewPlacement("center",
		sizing.Input{ContainerWidth: 800, ContainerHeight: 600, TargetWidth: 400, TargetHeight: 200},
		sizing.Output{Width: 400, Height: 200, Left: 200, Top: 200, Scale: 1})

	var buf bytes.Buffer
	if err := writeComputeOutput(&buf, p, &computeOpts{format: formatText}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"center", "800x600", "400x200", "left 200, top 200"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("text output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunSizings(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := c.runSizings(ctx, &buf, "", formatJSON); err != nil {
		t.Fatalf("runSizings: %v", err)
	}
	var infos []sizing.Info
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 6 {
		t.Errorf("len(infos) = %d, want 6", len(infos))
	}

	script := filepath.Join(t.TempDir(), "corner.lua")
	writeFile(t, script, cornerScript)
	buf.Reset()
	if err := c.runSizings(ctx, &buf, script, formatText); err != nil {
		t.Fatalf("runSizings: %v", err)
	}
	if !strings.Contains(buf.String(), "corner") || !strings.Contains(buf.String(), "pin to the top-left corner") {
		t.Errorf("table missing script:\n%s", buf.String())
	}

	if err := c.runSizings(ctx, &buf, "", formatSVG); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("svg format error = %v, want INVALID_FORMAT", err)
	}
}

const batchProfile = `
sizing = "contain"
width = 400
height = 200

[[scenario]]
name = "desktop"
container_width = 800
container_height = 600

[[scenario]]
name = "phone"
container_width = 375
container_height = 667
sizing = "center"

[[scenario]]
name = "banner"
container_width = 1000
container_height = 100
sizing = "FILL"
`

func TestComputeScenarios(t *testing.T) {
	p, err := profile.Decode([]byte(batchProfile))
	if err != nil {
		t.Fatal(err)
	}
	reg := sizing.NewBuiltinRegistry()

	for _, limit := range []int{0, 1, 4} {
		got, err := computeScenarios(context.Background(), p, reg, limit)
		if err != nil {
			t.Fatalf("limit %d: %v", limit, err)
		}
		if len(got) != 3 {
			t.Fatalf("limit %d: %d placements", limit, len(got))
		}

		wantNames := []string{"desktop", "phone", "banner"}
		wantSizings := []string{"contain", "center", "fill"}
		for i, pl := range got {
			if pl.Name != wantNames[i] || pl.Sizing != wantSizings[i] {
				t.Errorf("limit %d: placement %d = %s/%s, want %s/%s",
					limit, i, pl.Name, pl.Sizing, wantNames[i], wantSizings[i])
			}
		}
		if got[0].Output.Scale != 2 {
			t.Errorf("desktop scale = %v, want 2", got[0].Output.Scale)
		}
		if got[2].Output.Width != 1000 || got[2].Output.Height != 100 {
			t.Errorf("banner = %+v", got[2].Output)
		}
	}
}

func TestComputeScenariosCancelled(t *testing.T) {
	p, err := profile.Decode([]byte(batchProfile))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := computeScenarios(ctx, p, sizing.NewBuiltinRegistry(), 1); err == nil {
		t.Error("cancelled batch should fail")
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.toml")
	writeFile(t, path, batchProfile)
	out := filepath.Join(dir, "placements.json")
	svgDir := filepath.Join(dir, "svg")

	if err := execute(t, "batch", path, "-o", out, "--svg-dir", svgDir, "--concurrency", "2"); err != nil {
		t.Fatalf("batch: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var placements []sink.Placement
	if err := json.Unmarshal(data, &placements); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(placements) != 3 {
		t.Errorf("len(placements) = %d, want 3", len(placements))
	}

	for _, name := range []string{"desktop", "phone", "banner"} {
		if _, err := os.Stat(filepath.Join(svgDir, name+".svg")); err != nil {
			t.Errorf("missing SVG for %s: %v", name, err)
		}
	}
}

func TestBatchCommandNoScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	writeFile(t, path, `sizing = "fill"`)

	if err := execute(t, "batch", path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestBatchCommandConflictingProfile(t *testing.T) {
	if err := execute(t, "batch", "a.toml", "--config", "b.toml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
