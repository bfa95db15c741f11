package pagemeta

// PageExtractor extracts metadata from raw HTML pages.
type PageExtractor interface {
	// ExtractPage parses html and returns its metadata record.
	// pageURL is used to resolve relative URLs and derive fallbacks;
	// it may be empty.
	ExtractPage(html string, pageURL string) (Record, error)
}
