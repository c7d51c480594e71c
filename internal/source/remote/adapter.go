package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Adapter downloads a dataset over HTTP(S).
type Adapter struct {
	client *resty.Client
	url    string
}

// NewAdapter creates a new HTTP dataset adapter.
// Parameters:
//   - url: http:// or https:// location of the CSV.
//   - timeout: request timeout; 0 means 30s.
//
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(url string, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetHeader("Accept", "text/csv, text/plain")

	return &Adapter{client: client, url: url}
}

// GetSourceID returns the URL.
func (a *Adapter) GetSourceID() string {
	return a.url
}

// Load fetches the dataset body.
func (a *Adapter) Load(ctx context.Context) (string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		Get(a.url)
	if err != nil {
		return "", fmt.Errorf("dataset download failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("dataset download failed: status %d", resp.StatusCode())
	}
	return resp.String(), nil
}
