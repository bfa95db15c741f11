package pagemeta

import (
	"regexp"
	"strconv"
	"strings"
)

// Element is a single node matched by a selector query.
type Element interface {
	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)

	// Text returns the combined text content of the element.
	Text() string
}

// Document is a parsed HTML page that can be queried with CSS selectors.
type Document interface {
	// QueryAll returns every element matching selector in document order.
	// Returns an error if the selector is not valid.
	QueryAll(selector string) ([]Element, error)
}

// Context holds per-extraction, read-only data threaded through rule
// evaluation.
type Context struct {
	// URL is the address the document was loaded from. May be empty.
	URL string
}

// ExtractFunc produces a candidate value from a matched element.
// It returns false when the element carries no value.
type ExtractFunc func(el Element) (string, bool)

// ScoreFunc overrides the score of a matched element. It returns false to
// leave the current score untouched.
type ScoreFunc func(el Element, score int) (int, bool)

// ProcessFunc transforms the winning value of a rule set.
type ProcessFunc func(v any, ctx Context) any

// DefaultFunc supplies a value when no rule produced one.
// Returning a nil value and a nil error leaves the field absent.
type DefaultFunc func(ctx Context) (any, error)

// Rule pairs a CSS selector with the extractor applied to its matches.
type Rule struct {
	Selector string
	Extract  ExtractFunc
}

// RuleSet describes how to extract a single metadata field. Rules are
// listed in priority order: earlier rules win over later ones unless a
// scorer says otherwise.
//
// A RuleSet must not be modified once it is in use; it may be shared by
// concurrent extractions.
type RuleSet struct {
	Rules      []Rule
	Scorers    []ScoreFunc
	Processors []ProcessFunc
	Default    DefaultFunc
}

func (*RuleSet) entry() {}

// Attr returns an ExtractFunc reading the named attribute.
func Attr(name string) ExtractFunc {
	return func(el Element) (string, bool) {
		return el.Attr(name)
	}
}

// Text is an ExtractFunc reading the element's text content.
func Text(el Element) (string, bool) {
	return el.Text(), true
}

var digits = regexp.MustCompile(`\d+`)

// IconSizeScorer scores icons by the first dimension of their sizes
// attribute, so <link sizes="32x32"> beats <link sizes="16x16">. Elements
// without a numeric size keep their positional score.
func IconSizeScorer(el Element, _ int) (int, bool) {
	sizes, ok := el.Attr("sizes")
	if !ok {
		return 0, false
	}
	m := digits.FindString(sizes)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AbsoluteURL resolves a relative URL value against the page URL.
// Blank values are left blank.
func AbsoluteURL(v any, ctx Context) any {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return v
	}
	return MakeAbsolute(ctx.URL, strings.TrimSpace(s))
}

// SplitKeywords splits a comma separated value into trimmed, non-empty
// keywords, preserving their order.
func SplitKeywords(v any, _ Context) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	keywords := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// PrimaryLanguage reduces a language tag such as "en-US" to its primary
// subtag "en".
func PrimaryLanguage(v any, _ Context) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	primary, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	return primary
}

// PageURL is a DefaultFunc returning the page URL itself.
func PageURL(ctx Context) (any, error) {
	if ctx.URL == "" {
		return nil, nil
	}
	return ctx.URL, nil
}

// Favicon is a DefaultFunc returning the conventional /favicon.ico location
// of the page's site.
func Favicon(ctx Context) (any, error) {
	if ctx.URL == "" {
		return nil, nil
	}
	return MakeAbsolute(ctx.URL, "/favicon.ico"), nil
}

// Provider is a DefaultFunc deriving a site name from the page's host.
func Provider(ctx Context) (any, error) {
	if ctx.URL == "" {
		return nil, nil
	}
	host, err := HostOf(ctx.URL)
	if err != nil {
		return nil, err
	}
	return DeriveProvider(host), nil
}
