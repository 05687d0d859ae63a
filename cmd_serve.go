package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"haircolor-mixer/app"
	"haircolor-mixer/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the formula mixer HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "HTTP listen host")
	serveCmd.Flags().String("port", "8080", "HTTP listen port")
	serveCmd.Flags().String("base-url", "http://localhost:8080", "public base URL used to render recipe cards")
	_ = v.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("server.base_url", serveCmd.Flags().Lookup("base-url"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize application
	a, err := app.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	// Listen on 0.0.0.0 by default to accept connections from all interfaces (required for Docker/Render)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
