package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage defines the interface for submission file storage
type Storage interface {
	// Save stores a file at the given key and returns its public URL
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// Delete removes the file at the given key
	Delete(ctx context.Context, key string) error

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, key string) (string, error)

	// GetSignedURL returns a temporary signed URL for private files
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for S3
	Region    string // for S3
	AccessKey string
	SecretKey string
	Endpoint  string // for S3-compatible services (MinIO, R2)
}

// NewStorage creates a storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
