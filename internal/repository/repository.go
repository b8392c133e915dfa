package repository

import (
	"context"

	"autokit/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// FindAll retrieves all products.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindFeatured retrieves up to limit products flagged as featured.
	FindFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// FindBySlug retrieves a single product by its unique slug.
	// Returns (nil, nil) when no product matches.
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)

	// FindByID retrieves a single product by its identifier string.
	// A malformed identifier and a missing document are indistinguishable:
	// both return (nil, nil).
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// Count returns the number of product documents.
	Count(ctx context.Context) (int64, error)

	// InsertMany appends the given products to the collection.
	InsertMany(ctx context.Context, products []model.Product) error

	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes(ctx context.Context) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Insert appends a new order document and returns its generated
	// identifier. Every call creates a brand-new record.
	Insert(ctx context.Context, order *model.Order) (string, error)
}
