package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tubeguard/tubeguard/internal/rest"
	"github.com/tubeguard/tubeguard/internal/setup"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 120 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the REST API server",
		Action: func(ctx context.Context, _ *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := setup.InitializeApp(ctx, telemetry.ServiceREST, RESTLogDir)
			if err != nil {
				return err
			}
			defer app.Cleanup(context.Background())

			handler := rest.NewServer(rest.Dependencies{
				Analyzer: app.Analyzer,
				Stats:    app.DB.Model().Stats(),
				Videos:   app.DB.Model().Video(),
				Comments: app.DB.Model().Comment(),
			}, app.Logger)

			addr := app.Config.Service.Server.Address()
			srv := &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  ReadTimeout,
				WriteTimeout: WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("REST server started",
					zap.String("addr", addr),
					zap.String("instanceID", app.LogManager.GetInstanceID()),
					zap.String("logDir", app.LogManager.GetCurrentSessionDir()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					app.Logger.Error("Failed to start server", zap.Error(err))
					return err
				}
			case <-ctx.Done():
			}

			app.Logger.Info("Shutting down REST server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Error("Server forced to shutdown", zap.Error(err))
				return err
			}

			app.Logger.Info("Server gracefully stopped")
			return nil
		},
	}
}
