package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxfit/internal/api"
	"github.com/matzehuels/boxfit/pkg/httputil"
	"github.com/matzehuels/boxfit/pkg/sizing"
	"github.com/matzehuels/boxfit/pkg/sizing/script"
)

const (
	shutdownTimeout = 5 * time.Second
	listenAttempts  = 3
	listenBackoff   = 250 * time.Millisecond
)

// serveCommand creates the serve command that exposes the sizing engine
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       = defaultAddr
		scriptPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sizing engine over HTTP",
		Long: `Serve the sizing engine as a JSON API.

Routes:
  GET  /healthz
  GET  /v1/sizings
  GET  /v1/sizings/{name}
  POST /v1/size     {"sizing": "contain", "input": {"containerWidth": 800, ...}}
  POST /v1/render   same body, responds with an SVG drawing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, scriptPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	cmd.Flags().StringVar(&scriptPath, "script", "", "also serve a Lua sizing script")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, scriptPath string) error {
	logger := loggerFromContext(ctx)

	reg := sizing.NewBuiltinRegistry()
	if scriptPath != "" {
		h, err := script.Load(scriptPath, script.WithLogger(logger))
		if err != nil {
			return err
		}
		defer h.Close()
		if err := reg.Register(h.Info(), h); err != nil {
			return err
		}
	}

	ln, err := listen(ctx, addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           api.New(reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("listening", "addr", ln.Addr().String(), "sizings", len(reg.Names()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// listen binds addr, retrying while the address is still in use by a
// previous process.
func listen(ctx context.Context, addr string) (net.Listener, error) {
	var ln net.Listener
	err := httputil.Retry(ctx, listenAttempts, listenBackoff, func() error {
		var err error
		ln, err = net.Listen("tcp", addr)
		if err != nil && errors.Is(err, syscall.EADDRINUSE) {
			return &httputil.RetryableError{Err: err}
		}
		return err
	})
	return ln, err
}
