package goquery

import (
	"strings"

	"github.com/fwojciec/pagemeta"
)

// Ensure PageExtractor implements pagemeta.PageExtractor at compile time.
var _ pagemeta.PageExtractor = (*PageExtractor)(nil)

// PageExtractor parses HTML with goquery and evaluates a rule table against it.
type PageExtractor struct {
	extractor pagemeta.Extractor
}

// Option configures a PageExtractor.
type Option func(*PageExtractor)

// WithTable sets the rule table. Defaults to pagemeta.DefaultTable.
func WithTable(table pagemeta.Table) Option {
	return func(p *PageExtractor) {
		p.extractor.Table = table
	}
}

// WithErrorHandler sets the function receiving per-field evaluation errors.
func WithErrorHandler(fn func(err error)) Option {
	return func(p *PageExtractor) {
		p.extractor.OnError = fn
	}
}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor(opts ...Option) *PageExtractor {
	p := &PageExtractor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractPage parses rawHTML and returns its metadata.
func (p *PageExtractor) ExtractPage(rawHTML string, pageURL string) (pagemeta.Record, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty HTML input")
	}

	doc, err := NewDocumentFromString(rawHTML)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(doc, pageURL), nil
}
