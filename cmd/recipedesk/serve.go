package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/config"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/recipe"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory recipe server for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", env.cfg.Serve.Addr)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return serve(ctx, ln, env.log, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default localhost:8000)")
	_ = env.v.BindPFlag(config.KeyAddr, cmd.Flags().Lookup("addr"))
	return cmd
}

// serve answers recipe requests on ln until ctx ends.
func serve(ctx context.Context, ln net.Listener, log *logger.Logger, out io.Writer) error {
	store := recipe.NewMemoryStore(log)
	srv := &http.Server{
		Handler:           recipe.NewHandler(store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	fmt.Fprintf(out, "serving recipes on http://%s/recipes/\n", ln.Addr())
	log.Info("serve: listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("serve: stopped")
	return nil
}
