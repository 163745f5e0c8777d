package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/sink"
)

// Output formats of the compute command.
const (
	formatText = "text"
	formatJSON = "json"
	formatSVG  = "svg"
)

type computeOpts struct {
	profileFlags
	container string
	format    string
	output    string
	labels    bool
}

// computeCommand creates the compute command for a single placement.
func (c *CLI) computeCommand() *cobra.Command {
	opts := computeOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Place a target inside one container",
		Long: `Place a target inside one container and print the result.

The placement is computed by a resize controller bound to an in-memory
container of the given size. Values come from the profile (--config) and are
overridden by flags.

Examples:
  boxfit compute --container 800x600 --size 400x200 --sizing contain
  boxfit compute --container 100x100 --size 50x50 -s fixedWidth -p 10 -f json
  boxfit compute -c boxfit.toml --container 1920x1080 -f svg -o placement.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompute(cmd.Context(), cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.container, "container", "", "container size, WIDTHxHEIGHT (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "annotate the target in SVG output")
	_ = cmd.MarkFlagRequired("container")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, cmd *cobra.Command, opts *computeOpts) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	cw, ch, err := parseSize(opts.container)
	if err != nil {
		return fmt.Errorf("--container: %w", err)
	}

	s, err := opts.load(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	placement, err := computePlacement(ctx, s.profile, s.registry, cw, ch)
	if err != nil {
		return fmt.Errorf("compute placement: %w", err)
	}
	if s.script != nil && s.script.Err() != nil {
		printWarning("script %s failed, fallback used: %v", s.script.Name(), s.script.Err())
	}

	if opts.output == "" {
		return writeComputeOutput(os.Stdout, placement, opts)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := writeComputeOutput(f, placement, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Placement written")
	printFile(opts.output)
	if opts.format == formatJSON {
		printNewline()
		printNextStep("Draw it", fmt.Sprintf("%s compute --container %s -f svg -o placement.svg", appName, opts.container))
	}
	return nil
}

func writeComputeOutput(w io.Writer, p sink.Placement, opts *computeOpts) error {
	switch opts.format {
	case formatJSON:
		data, err := sink.RenderJSON(p)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatSVG:
		var svgOpts []sink.SVGOption
		if opts.labels {
			svgOpts = append(svgOpts, sink.WithLabels())
		}
		_, err := w.Write(sink.RenderSVG(p, svgOpts...))
		return err
	default:
		writePlacement(w, p)
		return nil
	}
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: text, json, svg)", format)
}
