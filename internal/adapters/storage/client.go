package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore implements MediaStore using MinIO.
type MinIOStore struct {
	client      *minio.Client
	endpoint    string
	bucket      string
	useSSL      bool
	maxFileSize int64
}

// NewMinIOStore creates a new MinIO-backed media store.
func NewMinIOStore(cfg Config) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOStore{
		client:      client,
		endpoint:    cfg.GetMinIOEndpoint(),
		bucket:      cfg.GetMinioBucketCampgroundImages(),
		useSSL:      cfg.GetMinIOUseSSL(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucket creates the image bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// Upload stores the staged file under a unique object key and returns the
// public URL together with the key.
func (s *MinIOStore) Upload(ctx context.Context, localPath, originalName string) (Asset, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("stat staged file: %w", err)
	}
	if err := s.ValidateFileSize(info.Size()); err != nil {
		return Asset{}, err
	}

	ext := strings.ToLower(path.Ext(originalName))
	contentType := mime.TypeByExtension(ext)
	if err := s.ValidateContentType(contentType); err != nil {
		return Asset{}, err
	}

	// UUID prefix prevents overwrites between identically named uploads.
	baseName := strings.TrimSuffix(path.Base(originalName), path.Ext(originalName))
	key := fmt.Sprintf("%s_%s%s", uuid.New().String()[:8], baseName, ext)

	_, err = s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("failed to upload image %s: %w", key, err)
	}

	return Asset{URL: s.objectURL(key), Key: key}, nil
}

// Destroy removes an object from storage by its key.
func (s *MinIOStore) Destroy(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}

// objectURL builds the public URL for an object in the image bucket.
// The bucket carries a public-read policy; images are served directly.
func (s *MinIOStore) objectURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
