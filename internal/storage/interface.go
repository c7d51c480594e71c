package storage

import (
	"context"
	"io"
)

// ObjectStorage is the subset of an object store the recommender needs:
// fetching seed datasets and archiving uploaded ones.
type ObjectStorage interface {
	// Upload writes an object under key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens an object for reading; the caller closes it
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key is present
	Exists(ctx context.Context, key string) (bool, error)
}
