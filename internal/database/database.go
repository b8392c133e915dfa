package database

import (
	"context"
	"fmt"
	"time"

	"autokit/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect creates a MongoDB client and returns a handle to the configured
// database. It verifies connectivity with a ping before returning.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetMinPoolSize(uint64(cfg.MinPoolSize))

	logger.Info().
		Str("database", cfg.Name).
		Int("max_pool_size", cfg.MaxPoolSize).
		Int("min_pool_size", cfg.MinPoolSize).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Str("database", cfg.Name).Msg("MongoDB connection established")

	return client.Database(cfg.Name), nil
}

// Disconnect closes the client owning the given database handle.
func Disconnect(ctx context.Context, db *mongo.Database, logger zerolog.Logger) {
	if db == nil {
		return
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
	}
}
