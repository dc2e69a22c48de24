// Package storage provides the media store boundary for campground images:
// an S3-compatible object store that hands back a public URL plus an opaque
// key used only for deletion.
package storage

import "context"

// Asset identifies a stored image. URL is the public object URL; Key is the
// opaque deletion handle. The two always travel together: callers never
// persist one without the other.
type Asset struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// MediaStore defines the operations the campgrounds module needs from the
// image hosting service.
type MediaStore interface {
	// Upload stores the file staged at localPath under a collision-resistant
	// object key derived from originalName and returns the resulting asset.
	Upload(ctx context.Context, localPath, originalName string) (Asset, error)

	// Destroy removes a previously uploaded asset by its key.
	Destroy(ctx context.Context, key string) error

	// EnsureBucket creates the image bucket if it doesn't exist.
	EnsureBucket(ctx context.Context) error

	// ValidateContentType checks if the content type is an allowed image type.
	ValidateContentType(contentType string) error

	// ValidateFileSize checks if the file size is within limits.
	ValidateFileSize(sizeBytes int64) error
}

// Config defines the configuration interface for the media store.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketCampgroundImages() string
	IsMinIOEnabled() bool
}
