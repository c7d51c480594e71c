package source

import "context"

// Source fetches a co-occurrence dataset as raw CSV text.
type Source interface {
	// GetSourceID returns a stable identifier such as "file:./seed.csv".
	GetSourceID() string

	// Load returns the full dataset text.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - string: CSV text starting with the dataset header.
	//   - error: non-nil if the dataset cannot be fetched.
	Load(ctx context.Context) (string, error)
}
