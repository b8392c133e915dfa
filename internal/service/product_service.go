package service

import (
	"context"
	"fmt"

	"autokit/internal/model"
	"autokit/internal/repository"

	"github.com/rs/zerolog"
)

// featuredLimit caps the featured-products listing regardless of how many
// products carry the featured flag.
const featuredLimit = 8

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Featured retrieves at most featuredLimit featured products.
func (s *productService) Featured(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindFeatured(ctx, featuredLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list featured products")
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved featured products")

	return products, nil
}

// GetBySlug retrieves a single product by its unique slug.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if slug == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get product by slug")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("slug", slug).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
