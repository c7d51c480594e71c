package local

import (
	"context"
	"fmt"
	"os"
)

// Adapter loads a dataset from a file on local disk.
type Adapter struct {
	path string
}

// NewAdapter creates a new local file adapter.
// Parameters:
//   - path: path to the CSV file.
//
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(path string) *Adapter {
	return &Adapter{path: path}
}

// GetSourceID returns the source identifier with a "file:" prefix.
func (a *Adapter) GetSourceID() string {
	return "file:" + a.path
}

// Load reads the whole file.
func (a *Adapter) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("dataset file not found: %s", a.path)
		}
		return "", fmt.Errorf("failed to read dataset file: %w", err)
	}
	return string(data), nil
}
