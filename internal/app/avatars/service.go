/*
Package avatars provides presigned-URL access to the S3-compatible bucket
holding shopper avatar images.

The service only hands out presigned URLs; image bytes never pass through the
storefront server.
*/
package avatars

import (
	"context"
	"time"
)

// ServiceConfig holds the connection settings for the avatar bucket.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service is the avatar storage contract consumed by the profile handlers.
type Service interface {
	// PresignUpload generates a presigned URL for uploading an avatar image.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload generates a presigned URL for fetching an avatar image.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the avatar object stored under key.
	Delete(ctx context.Context, key string) error
}

// NewService returns the S3-backed Service implementation.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
