// Command seed inserts the sample catalog into the configured document store
// when it holds no products yet. It reads the same configuration as the API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kuse-store/internal/catalog"
	"kuse-store/internal/config"
	"kuse-store/internal/database"
	"kuse-store/internal/model"
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

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Database.Configured() {
		return fmt.Errorf("DATABASE_URL is required to seed the catalog")
	}

	st, err := database.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	defer st.Close(context.Background())

	products := service.NewProductService(st, model.NewValidation(), catalog.FromConfig(ctx, cfg, logger), logger)

	result, err := products.Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info().
		Str("database", st.Name()).
		Int("count", result.Count).
		Msg(result.Message)

	return nil
}
