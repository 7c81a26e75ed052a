package database

import (
	"context"
	"fmt"

	"kuse-store/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects to MongoDB. The driver connects lazily, so an
// unreachable server only produces a warning here.
func NewMongoClient(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(uint64(cfg.MaxConnections)).
		SetMinPoolSize(uint64(cfg.MinConnections)).
		SetServerSelectionTimeout(cfg.Timeout).
		SetConnectTimeout(cfg.Timeout)

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	logger.Info().
		Str("database", cfg.Name).
		Int("max_connections", cfg.MaxConnections).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn().Err(err).Msg("MongoDB not reachable yet")
		return client, nil
	}

	logger.Info().Msg("connected to MongoDB")

	return client, nil
}
