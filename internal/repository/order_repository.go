package repository

import (
	"context"
	"fmt"

	"autokit/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// orderCollection is the name of the order collection.
const orderCollection = "order"

// orderRepository implements the OrderRepository interface using MongoDB.
type orderRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewOrderRepository creates a new MongoDB-backed order repository.
// A nil database handle is permitted; inserts then report the store as
// unavailable instead of panicking.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) OrderRepository {
	r := &orderRepository{
		logger: logger.With().Str("repository", "order").Logger(),
	}
	if db != nil {
		r.collection = db.Collection(orderCollection)
	}
	return r
}

// Insert appends a new order document and returns its generated identifier.
func (r *orderRepository) Insert(ctx context.Context, order *model.Order) (string, error) {
	if r.collection == nil {
		return "", model.ErrStoreUnavailable
	}

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		r.logger.Error().Err(err).Int("item_count", len(order.Items)).Msg("failed to insert order")
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}

	return oid.Hex(), nil
}
