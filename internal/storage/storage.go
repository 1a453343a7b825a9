// Package storage provides persistence for the manifests produced by a run.
// It defines the Storage interface (port) and implementations for local disk
// and S3.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for manifest output.
type Storage interface {
	// Save writes data to name, relative to the storage root, and returns the
	// resulting file path. Parent directories are created as needed and an
	// existing file is replaced atomically.
	Save(ctx context.Context, name string, data io.Reader) (path string, err error)

	// Open returns a reader for a file previously returned by Save.
	// The caller is responsible for closing the returned ReadCloser.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the specified files.
	// It continues even if some files fail to delete.
	Remove(ctx context.Context, paths []string) error

	// UploadToS3 uploads data to S3 and returns the object URL.
	// Returns ErrS3NotConfigured if S3 is not configured.
	UploadToS3(ctx context.Context, key string, data io.Reader) (url string, err error)
}
