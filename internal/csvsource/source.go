// Package csvsource reads product and bill CSV feeds from the local file
// system or from S3, validating headers and cleaning rows before they
// reach the import services.
package csvsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Source opens a raw CSV stream for a file reference.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// ForRef returns the source able to serve ref: s3://bucket/key references
// get the S3 source, everything else the local file source.
func ForRef(ctx context.Context, ref, region string, logger zerolog.Logger) (Source, error) {
	if strings.HasPrefix(ref, "s3://") {
		return NewS3Source(ctx, region, logger)
	}
	return NewFileSource(logger), nil
}

// fileSource implements Source for local CSV files.
type fileSource struct {
	logger zerolog.Logger
}

// NewFileSource creates a local file system source.
func NewFileSource(logger zerolog.Logger) Source {
	return &fileSource{
		logger: logger.With().Str("component", "file-source").Logger(),
	}
}

func (s *fileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	s.logger.Debug().Str("file", ref).Msg("opening CSV file")

	file, err := os.Open(ref)
	if err != nil {
		s.logger.Error().Err(err).Str("file", ref).Msg("failed to open CSV file")
		return nil, fmt.Errorf("failed to open CSV file %s: %w", ref, err)
	}

	return file, nil
}

// s3Source implements Source for CSV feeds stored in AWS S3.
type s3Source struct {
	client *s3.Client
	logger zerolog.Logger
}

// NewS3Source creates an S3-backed source using the default AWS credential
// chain.
func NewS3Source(ctx context.Context, region string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "s3-source").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &s3Source{
		client: s3.NewFromConfig(cfg),
		logger: logger,
	}, nil
}

func (s *s3Source) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bucket", bucket).
		Str("key", key).
		Msg("fetching CSV from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", bucket, key, err)
	}

	return result.Body, nil
}

// parseS3Ref splits an s3://bucket/key reference into bucket and key.
func parseS3Ref(ref string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(ref, "s3://")
	if trimmed == ref {
		return "", "", fmt.Errorf("not an s3 reference: %s", ref)
	}

	bucket, key, found := strings.Cut(trimmed, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %s: expected s3://bucket/key", ref)
	}

	return bucket, key, nil
}
