package storage

import (
	"bytes"
	"context"
	"time"

	appconfig "roaddogs/config"
	"roaddogs/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	log     logger.Logger
}

func NewS3Store(ctx context.Context, config appconfig.Config) (*S3Store, error) {
	log := logger.New("storage").Function("NewS3Store")

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.StorageRegion))
	if err != nil {
		return nil, log.Err("failed to load AWS SDK config", err)
	}

	options := s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		UsePathStyle: true,
	}
	if config.StorageEndpoint != "" {
		options.BaseEndpoint = aws.String(config.StorageEndpoint)
	}

	client := s3.New(options)

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  config.StorageBucket,
		log:     logger.New("storage"),
	}, nil
}

// Upload puts a private object and returns its key as the stored reference.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	log := s.log.Function("Upload")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", log.Err("failed to upload object", err, "key", key, "bucket", s.bucket)
	}

	return key, nil
}

// SignedURL presigns a GET for the reference. Callers fall back to the raw
// reference themselves when this fails.
func (s *S3Store) SignedURL(ctx context.Context, reference string, ttl time.Duration) (string, error) {
	log := s.log.Function("SignedURL")

	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(reference),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", log.Err("failed to presign object", err, "reference", reference)
	}

	return request.URL, nil
}
