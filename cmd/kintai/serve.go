package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hyaku122/kintai-final/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			if address == "" {
				address = cfg.Server.Address
			}
			if cfg.Log.GetLevel() != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := &http.Server{
				Addr:    address,
				Handler: api.NewHandler(manager, logger).Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server started", zap.String("address", address))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// Setup signal handling
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case sig := <-sigChan:
				logger.Info("Received signal, shutting down",
					zap.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}
			logger.Info("HTTP server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "addr", "", "Listen address (default: server.address from config)")

	return cmd
}
