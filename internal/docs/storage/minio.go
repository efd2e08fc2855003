// Package storage holds the object-store behind document ingestion. The
// deployment keeps source PDFs in a MinIO bucket; the database only carries
// the object key.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	docerror "github.com/Darios2021/coc-backend/internal/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise MinIO client: %w", err)
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return nil
}

func (s *MinioStore) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}

	return u.String(), nil
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}

	return nil
}

func (s *MinioStore) List(ctx context.Context) ([]ObjectInfo, error) {
	var items []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket: %w", obj.Err)
		}
		items = append(items, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	return items, nil
}

// Disabled stands in when the MinIO variables are absent; the service still
// boots and every storage call reports the feature as off.
type Disabled struct{}

func (Disabled) Put(context.Context, string, []byte, string) error {
	return docerror.ErrStorageDisabled
}

func (Disabled) PresignedGet(context.Context, string, time.Duration) (string, error) {
	return "", docerror.ErrStorageDisabled
}

func (Disabled) Remove(context.Context, string) error {
	return docerror.ErrStorageDisabled
}

func (Disabled) List(context.Context) ([]ObjectInfo, error) {
	return nil, docerror.ErrStorageDisabled
}
