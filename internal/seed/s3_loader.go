package seed

import (
	"context"
	"fmt"

	"autokit/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading product JSON from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based seed loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-seed-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 seed loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads a product JSON object from S3 and returns the decoded
// products. The source parameter is the full S3 key; keys ending in .gz are
// transparently decompressed.
func (l *s3Loader) Load(ctx context.Context, source string) ([]model.Product, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", source).
		Msg("loading seed products from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(source),
	})
	if err != nil {
		l.logger.Error().Err(err).Str("key", source).Msg("failed to get seed object from S3")
		return nil, fmt.Errorf("failed to get seed object s3://%s/%s: %w", l.bucket, source, err)
	}
	defer result.Body.Close()

	products, err := decodeProducts(result.Body, source)
	if err != nil {
		l.logger.Error().Err(err).Str("key", source).Msg("failed to decode seed object")
		return nil, err
	}

	l.logger.Info().Int("count", len(products)).Str("key", source).Msg("seed products loaded")

	return products, nil
}
