package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-downloader/internal/cleanup"
	"video-downloader/internal/config"
	"video-downloader/internal/database"
	"video-downloader/internal/downloader"
	"video-downloader/internal/history"
	"video-downloader/internal/media"
	"video-downloader/internal/network"
	"video-downloader/internal/platform"
	"video-downloader/internal/transport"
	"video-downloader/internal/videoapi"
	"video-downloader/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup structured logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting Video Downloader", "version", "1.0.0", "api_base_url", cfg.APIBaseURL)

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	// Initialize download service client
	apiClient := videoapi.New(cfg.APIBaseURL)

	// Check the service (warn but don't exit, it may come up later)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := apiClient.CheckHealth(ctx); err != nil {
		slog.Warn("Download service health check failed - continuing anyway", "error", err)
	} else {
		slog.Info("Download service is healthy")
	}
	cancel()

	registry := platform.Default()
	catalog := platform.NewCatalog(apiClient, registry.Names())

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	catalog.Refresh(ctx)
	cancel()

	store := history.New(db)
	store.Load()

	httpClient, err := transport.NewBrowserClient(int(config.DownloadTimeout / time.Second))
	if err != nil {
		return fmt.Errorf("failed to initialize media client: %w", err)
	}
	fetcher := transport.NewFetcher(httpClient, "")

	// Remove temp files orphaned by a previous session
	if _, err := cleanup.NewService("").SweepTempFiles(config.DownloadTimeout); err != nil {
		slog.Error("Failed to clean up orphaned temporary files", "error", err)
	}
	library := media.NewLibrary(cfg.MediaLibraryPath)

	controller := downloader.New(apiClient, fetcher, library, registry)
	monitor := network.NewMonitor(apiClient, cfg.ReachabilityInterval)

	server := web.NewServer(cfg, controller, store, catalog, monitor)

	return runServer(server, monitor)
}

func runServer(server *web.Server, monitor *network.Monitor) error {
	// Create main context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start reachability monitor in goroutine
	go monitor.Start(ctx)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	// Cancel context to stop the monitor
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// setupLogging configures structured logging based on the log level
func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
