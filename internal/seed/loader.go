package seed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"autokit/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads sample products from an external source.
type Loader interface {
	// Load reads the sample-product document named by source.
	Load(ctx context.Context, source string) ([]model.Product, error)
}

// fileLoader implements Loader for reading product JSON from the local
// file system. Files ending in .gz are transparently decompressed.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a product JSON file and returns the decoded products.
func (l *fileLoader) Load(ctx context.Context, source string) ([]model.Product, error) {
	l.logger.Info().Str("file", source).Msg("loading seed products from file")

	file, err := os.Open(source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", source, err)
	}
	defer file.Close()

	products, err := decodeProducts(file, source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to decode seed file")
		return nil, err
	}

	l.logger.Info().Int("count", len(products)).Str("file", source).Msg("seed products loaded")

	return products, nil
}

// decodeProducts decodes a JSON array of products from r, unwrapping gzip
// when the source name ends in .gz.
func decodeProducts(r io.Reader, source string) ([]model.Product, error) {
	if strings.HasSuffix(source, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode seed products from %s: %w", source, err)
	}

	return products, nil
}
