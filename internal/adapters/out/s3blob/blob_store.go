// Package s3blob stores proof-of-delivery media in an S3 bucket.
package s3blob

import (
	"context"
	"fmt"
	"io"

	"pharmadelivery/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config carries the credentials and bucket settings for the blob store.
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides the S3 endpoint, for MinIO and other
	// S3-compatible stores. Empty means AWS.
	Endpoint string
}

// S3BlobStore implements ports.BlobStore on top of an S3 bucket. References
// returned by Put use the s3://<bucket>/<key> form; they are opaque to the
// core and resolved back to the bucket only when serving the media.
type S3BlobStore struct {
	client *s3.Client
	bucket string
}

// NewS3BlobStore creates a blob store bound to the configured bucket.
func NewS3BlobStore(ctx context.Context, cfg Config) (*S3BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	if cfg.Region == "" {
		return nil, errs.NewValueIsRequiredError("region")
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3BlobStore{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads a blob and returns its reference.
func (s *S3BlobStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}
	if body == nil {
		return "", errs.NewValueIsRequiredError("body")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", key, s.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
