package images

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/DibuBaj/Backend/cmd/identity/ids"
)

// S3Config carries everything needed to reach an S3-compatible bucket.
// BaseEndpoint is optional; set it for MinIO or other non-AWS endpoints.
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string

	// PublicBaseURL is the URL prefix clients fetch images from. When empty
	// it is derived from the endpoint/bucket.
	PublicBaseURL string
}

// S3Store implements Store over S3-compatible object storage.
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store validates cfg and builds the S3 client with static credentials.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("images: s3 region is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("images: s3 bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("images: s3 credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("images: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			// Path-style addressing is what MinIO expects.
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg}, nil
}

// storageKey builds a date-partitioned key: images/<year>/<month>/<day>/<ulid><ext>.
func storageKey(now time.Time, ext string) (string, error) {
	id, err := ids.NewULID(now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("images/%d/%d/%d/%s%s", now.Year(), int(now.Month()), now.Day(), id, ext), nil
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, contentType string) (Image, error) {
	if !AllowedContentType(contentType) {
		return Image{}, ErrUnsupportedType
	}

	key, err := storageKey(time.Now().UTC(), extensionFor(contentType))
	if err != nil {
		return Image{}, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Image{}, fmt.Errorf("images: put object: %w", err)
	}

	return Image{ID: key, URL: s.publicURL(key)}, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("images: delete object: %w", err)
	}
	return nil
}

func (s *S3Store) publicURL(key string) string {
	if base := strings.TrimRight(s.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	if s.cfg.BaseEndpoint != "" {
		return strings.TrimRight(s.cfg.BaseEndpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
