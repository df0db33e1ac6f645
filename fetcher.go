package pagex

import "context"

// Fetcher retrieves raw HTML from URLs.
// It performs exactly one attempt per call; retry policy belongs to the
// caller.
type Fetcher interface {
	// Fetch issues a single GET for the URL and returns the raw markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
