package service

import (
	"context"

	"autokit/internal/model"
)

// ProductService defines read operations over the catalogue.
type ProductService interface {
	// List retrieves all products.
	List(ctx context.Context) ([]model.Product, error)

	// Featured retrieves the featured products, capped at a fixed limit.
	Featured(ctx context.Context) ([]model.Product, error)

	// GetBySlug retrieves a single product by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
}

// OrderService defines operations for order creation.
type OrderService interface {
	// Create validates the cart against the catalogue, recomputes
	// authoritative prices, computes totals, and persists the order.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderReceipt, error)
}
