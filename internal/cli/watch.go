package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/pkg/profile"
	"github.com/matzehuels/boxfit/pkg/resizer"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

type watchOpts struct {
	profileFlags
	reload  bool
	logFile string
}

// watchCommand creates the watch command, an interactive viewer that keeps
// a placement in sync with the terminal size.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{reload: true}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactively place a target in the terminal",
		Long: `Open a full-screen viewer where the terminal is the container.

Resizing the terminal emits resize signals; the placement is recomputed after
the debounce period and redrawn. With --config, the profile is reloaded
whenever the file changes.

Keys:
  s / tab   next sizing handler
  + / -     grow or shrink the padding on every side
  a         toggle active
  r         rotate the container
  space     recompute now (after the debounce period)
  q         quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.reload, "reload", opts.reload, "reload the profile when it changes")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the viewer runs")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, cmd *cobra.Command, opts *watchOpts) error {
	s, err := opts.load(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	// The viewer owns the terminal; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, c.Logger.GetLevel())
	ctx = withLogger(ctx, logger)

	resizerOpts, err := s.profile.Options(s.registry)
	if err != nil {
		return err
	}
	resizerOpts = append(resizerOpts, resizer.WithLogger(logger))

	var reloads chan reloadMsg
	if opts.config != "" && opts.reload {
		reloads = make(chan reloadMsg, 1)
	}

	m := newWatchModel(s.registry, s.profile.Sizing, s.profile.Width, s.profile.Height, reloads, resizerOpts...)
	defer m.resizer.Detach()

	if reloads != nil {
		w, err := profile.Watch(opts.config)
		if err != nil {
			return err
		}
		defer w.Close()

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(watchCtx, func(p *profile.Profile, err error) {
			msg := applyReload(logger, m.resizer, s.registry, p, err)
			select {
			case reloads <- msg:
			case <-watchCtx.Done():
			}
		})
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// applyReload validates a reloaded profile and copies it into the resizer's
// configuration. The resizer is left untouched when the profile is invalid.
func applyReload(logger *log.Logger, r *resizer.Resizer, reg *sizing.Registry, p *profile.Profile, err error) reloadMsg {
	if err == nil {
		err = p.Validate(reg)
	}
	if err != nil {
		logger.Warn("profile reload failed", "err", err)
		return reloadMsg{err: err}
	}

	var applyErr error
	r.Configure(func(c *resizer.Config) { applyErr = p.Apply(reg, c) })
	if applyErr != nil {
		logger.Warn("profile reload failed", "err", applyErr)
		return reloadMsg{err: applyErr}
	}
	r.Schedule(nil)

	name := p.Sizing
	if info, ok := reg.Info(name); ok {
		name = info.Name
	}
	logger.Info("profile reloaded", "sizing", name)
	return reloadMsg{sizing: name}
}
