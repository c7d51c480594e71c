package source

import (
	"errors"
	"strings"
	"time"

	"github.com/timmy/cobuy/internal/source/local"
	"github.com/timmy/cobuy/internal/source/objectstore"
	"github.com/timmy/cobuy/internal/source/remote"
	"github.com/timmy/cobuy/internal/storage"
)

// ErrStorageNotConfigured is returned for s3:// URIs without object storage.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// FromURI picks an adapter for uri: "s3://key" reads from store,
// "http(s)://..." downloads, anything else is a local path.
func FromURI(uri string, store storage.ObjectStorage) (Source, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		if store == nil {
			return nil, ErrStorageNotConfigured
		}
		return objectstore.NewAdapter(store, strings.TrimPrefix(uri, "s3://")), nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return remote.NewAdapter(uri, 30*time.Second), nil
	default:
		return local.NewAdapter(strings.TrimPrefix(uri, "file://")), nil
	}
}
