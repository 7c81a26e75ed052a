package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kuse-store/internal/catalog"
	"kuse-store/internal/config"
	"kuse-store/internal/database"
	"kuse-store/internal/handler"
	"kuse-store/internal/model"
	"kuse-store/internal/router"
	"kuse-store/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnv()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Log)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting Kuse Shoes Store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the document store
	st, err := database.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
		defer closeCancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("failed to close document store")
		}
	}()

	validation := model.NewValidation()
	source := catalog.FromConfig(ctx, cfg, logger)

	// Initialize services
	productService := service.NewProductService(st, validation, source, logger)
	reviewService := service.NewReviewService(st, validation, logger)
	orderService := service.NewOrderService(st, validation, logger)
	statusService := service.NewStatusService(st, cfg.Database.Driver, cfg.Database.Configured(), logger)

	// Initialize router
	mux := router.New(router.Handlers{
		System:  handler.NewSystemHandler(productService, statusService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
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
