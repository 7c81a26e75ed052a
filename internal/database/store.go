package database

import (
	"context"
	"fmt"

	"kuse-store/internal/config"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// OpenStore opens the document store selected by cfg.Driver. Without a
// connection URL it returns store.Unavailable so the API can still start.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (store.Store, error) {
	if !cfg.Configured() {
		logger.Warn().
			Str("driver", cfg.Driver).
			Msg("DATABASE_URL not set, document store routes will answer 503")
		return store.Unavailable(), nil
	}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory document store, data is lost on exit")
		return store.NewMemoryStore(logger), nil

	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(pool, cfg.Timeout, logger), nil

	case config.DriverMongo:
		client, err := NewMongoClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(client, cfg.Name, cfg.Timeout, logger), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
