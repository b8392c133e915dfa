package repository

import (
	"context"
	"errors"
	"fmt"

	"autokit/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productCollection is the name of the product collection.
const productCollection = "product"

// productRepository implements the ProductRepository interface using MongoDB.
type productRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewProductRepository creates a new MongoDB-backed product repository.
// A nil database handle is permitted; every operation then reports the store
// as unavailable instead of panicking.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	r := &productRepository{
		logger: logger.With().Str("repository", "product").Logger(),
	}
	if db != nil {
		r.collection = db.Collection(productCollection)
	}
	return r
}

// FindAll retrieves all products.
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	if r.collection == nil {
		return nil, model.ErrStoreUnavailable
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode product documents")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindFeatured retrieves up to limit products flagged as featured.
func (r *productRepository) FindFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	if r.collection == nil {
		return nil, model.ErrStoreUnavailable
	}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query featured products")
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode product documents")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindBySlug retrieves a single product by its unique slug.
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if r.collection == nil {
		return nil, model.ErrStoreUnavailable
	}

	var p model.Product
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("slug", slug).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product by slug")
		return nil, fmt.Errorf("failed to query product by slug: %w", err)
	}

	return &p, nil
}

// FindByID retrieves a single product by its identifier string. Malformed
// identifiers fold into the not-found outcome so a bad client value can
// never fail the request with anything other than "not found".
func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if r.collection == nil {
		return nil, model.ErrStoreUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug().Str("product_id", id).Msg("malformed product identifier")
		return nil, nil
	}

	var p model.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product by ID")
		return nil, fmt.Errorf("failed to query product by ID: %w", err)
	}

	return &p, nil
}

// Count returns the number of product documents.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	if r.collection == nil {
		return 0, model.ErrStoreUnavailable
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// InsertMany appends the given products to the collection.
func (r *productRepository) InsertMany(ctx context.Context, products []model.Product) error {
	if r.collection == nil {
		return model.ErrStoreUnavailable
	}
	if len(products) == 0 {
		return nil
	}

	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		r.logger.Error().Err(err).Int("count", len(products)).Msg("failed to insert products")
		return fmt.Errorf("failed to insert products: %w", err)
	}

	return nil
}

// EnsureIndexes creates a unique index on the product slug.
func (r *productRepository) EnsureIndexes(ctx context.Context) error {
	if r.collection == nil {
		return model.ErrStoreUnavailable
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "featured", Value: 1}},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}
