package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autokit/internal/config"
	"autokit/internal/database"
	"autokit/internal/handler"
	"autokit/internal/repository"
	"autokit/internal/router"
	"autokit/internal/seed"
	"autokit/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting autokit API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the document store. A failed connection is not fatal:
	// read and diagnostic endpoints degrade instead of the process
	// refusing to start.
	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("store unavailable, starting without a database connection")
		db = nil
	}
	defer database.Disconnect(context.Background(), db, logger)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)

	if db != nil {
		if err := productRepo.EnsureIndexes(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to ensure product indexes")
		}

		// Seed sample data on first run. Failures are logged and
		// ignored; seeding must never block startup.
		seedLoader, source := newSeedLoader(ctx, cfg.Seed, logger)
		if err := seed.Run(ctx, productRepo, seedLoader, source, logger); err != nil {
			logger.Warn().Err(err).Msg("product seeding failed, continuing")
		}
	}

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	// Initialize HTTP handlers
	rootHandler := handler.NewRootHandler(logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	diagnosticsHandler := handler.NewDiagnosticsHandler(db, os.Getenv("DATABASE_URL") != "", logger)

	// Initialize router
	mux := router.New(rootHandler, productHandler, orderHandler, diagnosticsHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newSeedLoader picks the seed source: S3 when enabled (with local file
// fallback on initialisation failure), otherwise an optional local file.
// A nil loader means only the built-in samples are available.
func newSeedLoader(ctx context.Context, cfg config.SeedConfig, logger zerolog.Logger) (seed.Loader, string) {
	if cfg.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err == nil {
			return s3Loader, cfg.S3Key
		}
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 seed loader, falling back to local file system")
	}

	if cfg.File != "" {
		return seed.NewFileLoader(logger), cfg.File
	}

	return nil, ""
}
