// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"io"
	"time"
)

// DefaultURLExpiry is the presigned-link lifetime used when no expiry is configured.
const DefaultURLExpiry = time.Hour

// Storage is the interface for uploading objects and minting read links.
type Storage interface {
	// Upload streams data to the store under the given key. Last write wins;
	// there is no conditional put.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// PresignedURL returns a time-limited, signed, read-only URL for the
	// object at key.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
