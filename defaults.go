package pagemeta

// defaultTable is built once and shared by every extraction that does not
// supply its own table.
var defaultTable = Table{
	{Name: "description", Entry: &RuleSet{
		Rules: []Rule{
			{`meta[property="og:description"]`, Attr("content")},
			{`meta[name="description"]`, Attr("content")},
		},
	}},
	{Name: FieldIcon, Entry: &RuleSet{
		Rules: []Rule{
			{`link[rel="apple-touch-icon"]`, Attr("href")},
			{`link[rel="apple-touch-icon-precomposed"]`, Attr("href")},
			{`link[rel="icon"]`, Attr("href")},
			{`link[rel="fluid-icon"]`, Attr("href")},
			{`link[rel="shortcut icon"]`, Attr("href")},
			{`link[rel="Shortcut Icon"]`, Attr("href")},
			{`link[rel="mask-icon"]`, Attr("href")},
		},
		Scorers:    []ScoreFunc{IconSizeScorer},
		Processors: []ProcessFunc{AbsoluteURL},
	}},
	{Name: "image", Entry: &RuleSet{
		Rules: []Rule{
			{`meta[property="og:image:secure_url"]`, Attr("content")},
			{`meta[property="og:image:url"]`, Attr("content")},
			{`meta[property="og:image"]`, Attr("content")},
			{`meta[name="twitter:image"]`, Attr("content")},
			{`meta[property="twitter:image"]`, Attr("content")},
			{`meta[name="thumbnail"]`, Attr("content")},
		},
		Processors: []ProcessFunc{AbsoluteURL},
	}},
	{Name: "keywords", Entry: &RuleSet{
		Rules: []Rule{
			{`meta[name="keywords"]`, Attr("content")},
		},
		Processors: []ProcessFunc{SplitKeywords},
	}},
	{Name: "title", Entry: &RuleSet{
		Rules: []Rule{
			{`meta[property="og:title"]`, Attr("content")},
			{`meta[name="twitter:title"]`, Attr("content")},
			{`meta[property="twitter:title"]`, Attr("content")},
			{`meta[name="hdl"]`, Attr("content")},
			{`title`, Text},
		},
	}},
	{Name: "language", Entry: &RuleSet{
		Rules: []Rule{
			{`html[lang]`, Attr("lang")},
			{`meta[name="language"]`, Attr("content")},
		},
		Processors: []ProcessFunc{PrimaryLanguage},
	}},
	{Name: "type", Entry: &RuleSet{
		Rules: []Rule{
			{`meta[property="og:type"]`, Attr("content")},
		},
	}},
	{Name: FieldURL, Entry: &RuleSet{
		Rules: []Rule{
			{`a.amp-canurl`, Attr("href")},
			{`link[rel="canonical"]`, Attr("href")},
			{`meta[property="og:url"]`, Attr("content")},
		},
		Processors: []ProcessFunc{AbsoluteURL},
	}},
	{Name: FieldProvider, Entry: &RuleSet{
		Rules: []Rule{
			{`meta[property="og:site_name"]`, Attr("content")},
		},
	}},
}

// DefaultTable returns the built-in rule table covering description, icon,
// image, keywords, title, language, type, url, and provider.
//
// The returned table is shared; use With to derive a modified copy.
func DefaultTable() Table {
	return defaultTable
}
