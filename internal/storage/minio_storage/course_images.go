package minio_storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStorage serves presigned URLs for course images kept in a single
// minio bucket.
type ImageStorage struct {
	client     *minio.Client
	bucket     string
	presignTTL time.Duration
}

func NewImageStorage(endpoint, accessKey, secretKey string, useSSL bool, bucket string, presignTTL time.Duration) (*ImageStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", bucket, err)
		}
	}

	return &ImageStorage{client: client, bucket: bucket, presignTTL: presignTTL}, nil
}

func (s *ImageStorage) GetImageURL(ctx context.Context, objectKey string) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, s.presignTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
