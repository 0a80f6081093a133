package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/middleware"
	"clementus360/daily-tracker/routes"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Handler builds the full HTTP handler for the local API.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, a.api())
	return middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.AuthMiddleware(a.Adopter),
	)(mux)
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.Network != nil && app.Config.RemoteConfigured() {
				go app.Network.Probe(ctx, nil, app.Config.SupabaseURL, app.Config.ProbeInterval)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           app.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				config.Logger.WithFields(logrus.Fields{"addr": addr}).Info("Server is running")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			config.Logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.Addr, "Listen address")
	return cmd
}
