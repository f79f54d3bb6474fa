package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"campusevents/internal/domain"
)

// S3Config holds configuration for the S3-backed object store.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// NewObjectStore creates an object store from config. An empty bucket name
// yields a no-op store that only logs, for local development.
func NewObjectStore(config S3Config) domain.ObjectStore {
	if config.Bucket == "" {
		log.Printf("[STORAGE] No bucket configured, using noop object store")
		return &noopStore{}
	}
	awsCfg := aws.Config{
		Region: config.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		),
	}
	return &s3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: config.Bucket,
	}
}

type s3Store struct {
	client *s3.Client
	bucket string
}

func (s *s3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

type noopStore struct{}

func (n *noopStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	log.Println("[STORAGE] Object would be uploaded (noop)", "key", key)
	return nil
}

func (n *noopStore) Delete(ctx context.Context, key string) error {
	log.Println("[STORAGE] Object would be deleted (noop)", "key", key)
	return nil
}
