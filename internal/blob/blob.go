// Package blob stores ferment images behind a thin S3-like abstraction with
// memory, filesystem, and S3 backends.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverMemory is the in-process implementation, used in tests and
	// throwaway deployments.
	DriverMemory Driver = "memory"
	// DriverFilesystem is the local filesystem implementation.
	DriverFilesystem Driver = "filesystem"
	// DriverS3 is an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string // MIME type, optional
}

// Info describes a stored blob.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the interface for image blob backends. Keys are created once and
// never overwritten; image content is immutable.
type Store interface {
	// Put stores a new blob. Returns ErrExists if the key is taken.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)

	// Get returns blob metadata and a reader over its content. Returns
	// ErrNotFound if the key is absent. The caller closes the reader.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)

	// Delete removes the blob, reporting whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// PresignURL returns a time-limited GET URL for the blob, or
	// ErrUnsupported when the backend cannot pre-sign.
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Driver identifies the backend.
	Driver() Driver
}

// Sentinel errors shared by all drivers.
var (
	// ErrNotFound indicates the key has no stored blob.
	ErrNotFound = errors.New("blob not found")
	// ErrExists indicates a Put against an already taken key.
	ErrExists = errors.New("blob already exists")
	// ErrUnsupported indicates an optional capability is not available.
	ErrUnsupported = errors.New("blob: unsupported operation")
)
