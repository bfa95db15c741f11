package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagemeta"
	"golang.org/x/net/html"
)

// Ensure Document implements pagemeta.Document at compile time.
var _ pagemeta.Document = (*Document)(nil)

// Document adapts a goquery document to pagemeta.Document.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses HTML from r.
func NewDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// NewDocumentFromString parses an HTML string.
func NewDocumentFromString(s string) (*Document, error) {
	return NewDocument(strings.NewReader(s))
}

// NewDocumentFromNode wraps an already parsed node tree.
func NewDocumentFromNode(root *html.Node) *Document {
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// QueryAll returns all elements matching selector in document order.
// Selectors are compiled up front so that syntax errors are reported
// instead of silently matching nothing.
func (d *Document) QueryAll(selector string) ([]pagemeta.Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.ERULE, "invalid selector %q: %v", selector, err)
	}

	sel := d.doc.FindMatcher(matcher)
	elements := make([]pagemeta.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements, nil
}

// Ensure Element implements pagemeta.Element at compile time.
var _ pagemeta.Element = (*Element)(nil)

// Element adapts a single-node goquery selection to pagemeta.Element.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the named attribute of the element.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Text returns the text content of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}
