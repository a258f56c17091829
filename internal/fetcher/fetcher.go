package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for retrieving remote documents.
type Fetcher interface {
	// Get fetches the URL and returns the response body.
	// A non-200 response yields a *StatusError.
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}
