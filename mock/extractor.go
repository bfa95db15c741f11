package mock

import "github.com/fwojciec/pagemeta"

var _ pagemeta.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of pagemeta.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html string, pageURL string) (pagemeta.Record, error)
}

func (e *PageExtractor) ExtractPage(html string, pageURL string) (pagemeta.Record, error) {
	return e.ExtractPageFn(html, pageURL)
}
