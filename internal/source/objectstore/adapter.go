package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/timmy/cobuy/internal/storage"
)

// Adapter loads a dataset object from S3-compatible storage.
type Adapter struct {
	store storage.ObjectStorage
	key   string
}

// NewAdapter creates a new object storage adapter for key.
func NewAdapter(store storage.ObjectStorage, key string) *Adapter {
	return &Adapter{store: store, key: key}
}

// GetSourceID returns the source identifier with an "s3://" prefix.
func (a *Adapter) GetSourceID() string {
	return "s3://" + a.key
}

// Load downloads the object.
func (a *Adapter) Load(ctx context.Context) (string, error) {
	exists, err := a.store.Exists(ctx, a.key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("dataset object not found: %s", a.key)
	}

	body, err := a.store.Download(ctx, a.key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read dataset object: %w", err)
	}
	return string(data), nil
}
