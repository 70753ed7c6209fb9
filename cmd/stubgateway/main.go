// Package main is the entry point for the local stub gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/ai-gateway-client/internal/config"
	"github.com/hpn/ai-gateway-client/internal/gateway"
	"github.com/hpn/ai-gateway-client/internal/security"
	"github.com/hpn/ai-gateway-client/internal/ui"
	"github.com/spf13/pflag"
)

func main() {
	// =========================================================================
	// 1. Load configuration (Singleton)
	// =========================================================================
	configPath, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger (credentials redacted)
	// =========================================================================
	creds := cfg.Credentials()
	logger := security.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format, creds.Values()...)
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("host", cfg.Stub.Host),
		slog.Int("port", cfg.Stub.Port),
		slog.Int("configured_providers", creds.Len()),
	)

	// =========================================================================
	// 3. Build the HTTP server
	// =========================================================================
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := newServer(cfg, logger)

	ui.PrintBanner(os.Stdout, cfg.Stub.Version)
	ui.PrintStartupInfo(os.Stdout, srv.Addr, creds.Len())

	// Start server in goroutine
	go func() {
		logger.Info("server starting", slog.String("address", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// =========================================================================
	// 4. Graceful shutdown on SIGTERM/SIGINT
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown(os.Stdout)

	shutdownTimeout := time.Duration(cfg.Stub.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye(os.Stdout)
}

// parseFlags returns the --config path, empty when not given.
func parseFlags(args []string) (string, error) {
	fs := pflag.NewFlagSet("stubgateway", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file path (default: search ., ./configs, $HOME/.ai-gateway)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *configPath, nil
}

// loadConfig loads the configuration singleton from an explicit file or the default search paths.
func loadConfig(configPath string) (*config.Configuration, error) {
	if configPath == "" {
		return config.GetConfig()
	}
	return config.GetConfigWithPath(configPath)
}

// newServer wires the stub gateway routes into an http.Server built from cfg.
func newServer(cfg *config.Configuration, logger *slog.Logger) *http.Server {
	handler := gateway.NewHandler(
		gateway.WithCredentials(cfg.Credentials()),
		gateway.WithLogger(logger),
		gateway.WithVersion(cfg.Stub.Version),
	)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Stub.Host, cfg.Stub.Port),
		Handler:      gateway.NewRouter(handler, logger),
		ReadTimeout:  time.Duration(cfg.Stub.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Stub.WriteTimeoutSeconds) * time.Second,
	}
}
