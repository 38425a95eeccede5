package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/router"

	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(os.Stdout)
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			a.server.SetupHTTPServer(router.NewRouter(a.server, a.handlers))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- a.server.Start()
			}()

			select {
			case err := <-errCh:
				_ = a.server.Close()
				if err != nil {
					a.log.Error().Err(err).Msg("server stopped")
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			a.log.Info().Msg("server exited properly")
			return nil
		},
	}
}
