// Package seed populates the product collection with sample data on first
// run. Seeding is best effort: main logs a failed run and serves traffic
// regardless.
package seed

import (
	"context"
	"fmt"

	"autokit/internal/model"
	"autokit/internal/repository"

	"github.com/rs/zerolog"
)

// SampleProducts returns the built-in catalogue used when no external seed
// source is configured or the configured source fails to load.
func SampleProducts() []model.Product {
	return []model.Product{
		{
			Title:       "Neon Drive LED Poster",
			Slug:        "neon-drive-led-poster",
			Description: "Futuristic neon car silhouette with dynamic glow, perfect for garage or game room.",
			Price:       89.0,
			Category:    "LED Poster",
			Image:       "https://images.unsplash.com/photo-1542362567-b07e54358753?q=80&w=1200&auto=format&fit=crop",
			Gallery: []string{
				"https://images.unsplash.com/photo-1542362567-b07e54358753?q=80&w=1200&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1483721310020-03333e577078?q=80&w=1200&auto=format&fit=crop",
			},
			InStock:  true,
			Featured: true,
			Specs: map[string]interface{}{
				"size":       "24x36 in",
				"power":      "USB-C",
				"brightness": "Adjustable",
			},
		},
		{
			Title:       "Carbon Wave LED Poster",
			Slug:        "carbon-wave-led-poster",
			Description: "Matte carbon fibers meet flowing LED accents for a bold, stealthy vibe.",
			Price:       99.0,
			Category:    "LED Poster",
			Image:       "https://images.unsplash.com/photo-1520975922203-b272b1e4e766?q=80&w=1200&auto=format&fit=crop",
			InStock:     true,
			Featured:    true,
			Specs: map[string]interface{}{
				"size":  "18x24 in",
				"power": "USB-A",
				"mount": "Magnetic",
			},
		},
		{
			Title:       "Redline Interior Glow Kit",
			Slug:        "redline-interior-glow-kit",
			Description: "Premium ambient lighting kit with deep red tones inspired by performance interiors.",
			Price:       59.0,
			Category:    "Car Decor",
			Image:       "https://images.unsplash.com/photo-1511919884226-fd3cad34687c?q=80&w=1200&auto=format&fit=crop",
			InStock:     true,
			Featured:    false,
			Specs: map[string]interface{}{
				"length": "4x 60cm",
				"modes":  12,
				"remote": true,
			},
		},
	}
}

// Run seeds the product collection when it is empty. A configured loader and
// source take precedence over the built-in samples, but a loader failure
// falls back to them rather than failing the run. The returned error is
// informational; callers proceed to serve traffic either way.
func Run(ctx context.Context, productRepo repository.ProductRepository, loader Loader, source string, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "seed").Logger()

	count, err := productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Debug().Int64("count", count).Msg("product collection already populated, skipping seed")
		return nil
	}

	products := SampleProducts()
	if loader != nil && source != "" {
		loaded, err := loader.Load(ctx, source)
		switch {
		case err != nil:
			logger.Warn().Err(err).Str("source", source).Msg("seed source failed, using built-in samples")
		case len(loaded) == 0:
			logger.Warn().Str("source", source).Msg("seed source empty, using built-in samples")
		default:
			products = loaded
		}
	}

	if err := productRepo.InsertMany(ctx, products); err != nil {
		return fmt.Errorf("failed to insert seed products: %w", err)
	}

	logger.Info().Int("count", len(products)).Msg("seeded product collection")

	return nil
}
