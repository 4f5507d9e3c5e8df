package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/video-notes/internal/config"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/media"
	"github.com/nguyentantai21042004/video-notes/internal/notes"
	"github.com/nguyentantai21042004/video-notes/internal/pipeline"
	"github.com/nguyentantai21042004/video-notes/internal/refine"
	"github.com/nguyentantai21042004/video-notes/internal/server"
	"github.com/nguyentantai21042004/video-notes/internal/transcribe"
	"github.com/nguyentantai21042004/video-notes/internal/watcher"
	"github.com/nguyentantai21042004/video-notes/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Notes Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Jobs: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	client := refine.NewGenaiClient(cfg.LLM.APIKeys, log)
	refiner := refine.New(client, cfg.LLM.Model, log)

	pipe := pipeline.New(
		cfg,
		media.New(cfg.FFmpeg.BinaryPath, exec, log),
		transcribe.New(cfg.Whisper, exec, log),
		notes.New(refiner, log),
		log,
	)

	// Inbox watcher submits dropped files through the same validation
	// path as HTTP uploads.
	w, err := watcher.New(cfg.Paths.Inbox, func(ctx context.Context, path string) error {
		id, err := pipe.SubmitFile(ctx, path)
		if err != nil {
			return err
		}
		return pipe.Run(ctx, id)
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	srv := server.New(cfg.Server, pipe, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Notes Pipeline is ready!")
	log.Info(ctx, "HTTP API: %s", cfg.Server.Addr)
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Jobs: %s", cfg.Paths.Jobs)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Error(ctx, "HTTP shutdown error: %v", err)
	}

	log.Info(ctx, "Video Notes Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Jobs,
		cfg.Paths.Inbox,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
