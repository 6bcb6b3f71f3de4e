package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store is an ImageStore backed by Amazon S3 or a compatible API.
// Saved images are addressed as "uploads/images/<name>"; objects are
// stored under the same key so a CDN or proxy can front the bucket
// directly.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	logger   *slog.Logger
}

// S3Options configures an S3Store.
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string // non-empty for S3-compatible services (MinIO etc.)
}

// NewS3Store creates an S3-backed image store. The AWS credential chain
// is resolved from the environment.
func NewS3Store(ctx context.Context, opts S3Options, logger *slog.Logger) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   opts.Bucket,
		prefix:   "uploads/images",
		logger:   logger.With(slog.String("component", "s3_image_store")),
	}, nil
}

var _ ImageStore = (*S3Store)(nil)

// Save implements ImageStore.Save.
func (s *S3Store) Save(ctx context.Context, content io.Reader, contentType string) (string, error) {
	name, err := newImageName(contentType)
	if err != nil {
		return "", err
	}

	key := s.prefix + "/" + name
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	s.logger.Debug("image uploaded", slog.String("key", key))
	return key, nil
}

// Remove implements ImageStore.Remove.
func (s *S3Store) Remove(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, s.prefix+"/") {
		return fmt.Errorf("%w: invalid path %q", ErrImageNotFound, path)
	}

	// DeleteObject is idempotent on S3, so probe first to honor the
	// ErrImageNotFound contract.
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return fmt.Errorf("head image: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	s.logger.Debug("image deleted", slog.String("key", path))
	return nil
}
