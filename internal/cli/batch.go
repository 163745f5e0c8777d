package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/profile"
	"github.com/matzehuels/boxfit/pkg/sink"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

type batchOpts struct {
	profileFlags
	concurrency int
	output      string
	svgDir      string
}

// batchCommand creates the batch command that evaluates every scenario of a
// profile.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{concurrency: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "batch [profile]",
		Short: "Evaluate every scenario of a profile",
		Long: `Evaluate every [[scenario]] of a profile and print the placements as a table.

Each scenario names a container size and, optionally, its own sizing handler.
Scenarios are computed concurrently. The profile defaults to boxfit.toml in
the working directory.

Examples:
  boxfit batch
  boxfit batch layouts.toml -o placements.json
  boxfit batch layouts.toml --svg-dir out/ --sizing center`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("config") {
					return errors.New(errors.ErrCodeInvalidInput, "profile given both as argument and --config")
				}
				opts.config = args[0]
			}
			if opts.config == "" {
				opts.config = profile.DefaultFilename
			}
			return c.runBatch(cmd.Context(), cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", opts.concurrency, "scenarios computed in parallel")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write placements as JSON to this file")
	cmd.Flags().StringVar(&opts.svgDir, "svg-dir", "", "write one SVG per scenario into this directory")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, cmd *cobra.Command, opts *batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := opts.load(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(s.profile.Scenarios) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s defines no [[scenario]] entries", opts.config)
	}

	placements, err := computeScenarios(ctx, s.profile, s.registry, opts.concurrency)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %d scenarios", len(placements)))

	printInfo("%s: %s, target %gx%g", opts.config, s.profile.Sizing, s.profile.Width, s.profile.Height)
	fmt.Println(placementTable(placements))
	for _, p := range placements {
		if !p.Finite() {
			printWarning("scenario %s produced a non-finite placement", p.Name)
		}
	}

	if opts.output != "" {
		if err := sink.WritePlacementFile(opts.output, placements...); err != nil {
			return err
		}
		printSuccess("Placements written")
		printFile(opts.output)
	}
	if opts.svgDir != "" {
		if err := writeScenarioSVGs(opts.svgDir, placements); err != nil {
			return err
		}
		printSuccess("SVGs written")
		printFile(opts.svgDir)
	}
	return nil
}

// computeScenarios places the profile's target once per scenario, in
// scenario order. At most limit scenarios run at the same time.
func computeScenarios(ctx context.Context, p *profile.Profile, reg *sizing.Registry, limit int) ([]sink.Placement, error) {
	placements := make([]sink.Placement, len(p.Scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, sc := range p.Scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sp := *p
			sp.Sizing = p.ScenarioSizing(sc)
			if info, ok := reg.Info(sp.Sizing); ok {
				sp.Sizing = info.Name
			}

			pl, err := computePlacement(ctx, &sp, reg, sc.ContainerWidth, sc.ContainerHeight)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			pl.Name = sc.Name
			placements[i] = pl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return placements, nil
}

func writeScenarioSVGs(dir string, placements []sink.Placement) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, p := range placements {
		path := filepath.Join(dir, p.Name+".svg")
		data := sink.RenderSVG(p, sink.WithLabels(), sink.WithTitle(p.Name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
