package services

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobService fronts the object store that holds uploaded document files.
type BlobService interface {
	PresignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, bucket, object string) error
	EnsureBucket(ctx context.Context, bucket string) error
	Ping(ctx context.Context, bucket string) error
}

type blobClient struct {
	client *minio.Client
}

func NewBlobService(endpoint, accessKey, secretKey string, useSSL bool) (BlobService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &blobClient{client: client}, nil
}

func (b *blobClient) PresignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	url, err := b.client.PresignedGetObject(ctx, bucket, object, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (b *blobClient) Delete(ctx context.Context, bucket, object string) error {
	return b.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{})
}

func (b *blobClient) EnsureBucket(ctx context.Context, bucket string) error {
	found, err := b.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !found {
		return b.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (b *blobClient) Ping(ctx context.Context, bucket string) error {
	_, err := b.client.BucketExists(ctx, bucket)
	return err
}
