package pagemeta

import "context"

// Fetcher retrieves HTML from URLs. The library never fetches on its own;
// fetchers exist for callers such as the command-line tool.
type Fetcher interface {
	// Fetch retrieves the document at url and returns it as UTF-8 HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
