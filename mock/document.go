package mock

import "github.com/fwojciec/pagemeta"

var _ pagemeta.Document = (*Document)(nil)

// Document is a mock implementation of pagemeta.Document.
type Document struct {
	QueryAllFn func(selector string) ([]pagemeta.Element, error)
}

func (d *Document) QueryAll(selector string) ([]pagemeta.Element, error) {
	return d.QueryAllFn(selector)
}

var _ pagemeta.Element = (*Element)(nil)

// Element is a mock implementation of pagemeta.Element.
type Element struct {
	AttrFn func(name string) (string, bool)
	TextFn func() string
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}

func (e *Element) Text() string {
	return e.TextFn()
}
