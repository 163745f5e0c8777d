package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/sizing"
	"github.com/matzehuels/boxfit/pkg/sizing/script"
)

// sizingsCommand creates the sizings command that lists the registered
// sizing handlers.
func (c *CLI) sizingsCommand() *cobra.Command {
	var (
		scriptPath string
		format     = formatText
	)

	cmd := &cobra.Command{
		Use:     "sizings",
		Aliases: []string{"ls"},
		Short:   "List the available sizing handlers",
		Long: `List the sizing handlers by name, with their descriptions.

Handlers marked as ratio-based compare aspect ratios and require a non-zero
target size. A Lua script given with --script is listed alongside the
built-in handlers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSizings(cmd.Context(), os.Stdout, scriptPath, format)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "also list a Lua sizing script")
	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text, json")

	return cmd
}

func (c *CLI) runSizings(ctx context.Context, w io.Writer, scriptPath, format string) error {
	if format != formatText && format != formatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: text, json)", format)
	}

	reg := sizing.NewBuiltinRegistry()
	if scriptPath != "" {
		h, err := script.Load(scriptPath, script.WithLogger(loggerFromContext(ctx)))
		if err != nil {
			return err
		}
		defer h.Close()
		if err := reg.Register(h.Info(), h); err != nil {
			return err
		}
	}

	infos := reg.Infos()
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Fprintln(w, sizingsTable(infos))
	return nil
}
