package pagemeta

import "fmt"

// Field names the extractor treats specially when a page URL is known.
const (
	FieldURL       = "url"
	FieldProvider  = "provider"
	FieldIcon      = "icon"
	FieldIconURL   = "icon_url"
	FieldIconFound = "icon_found"
)

// Record maps field names to extracted values. Values are strings, string
// slices, booleans, or nested Records for grouped fields. Fields without a
// value are omitted.
type Record map[string]any

// Has reports whether the field is present.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// String returns the field as a string, or "" if it is absent or not a string.
func (r Record) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// Strings returns the field as a string slice, or nil.
func (r Record) Strings(name string) []string {
	s, _ := r[name].([]string)
	return s
}

// Group returns the nested record stored under name, or nil.
func (r Record) Group(name string) Record {
	g, _ := r[name].(Record)
	return g
}

// FieldError reports a field whose evaluation failed. The field is left out
// of the record; the remaining fields are unaffected.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "openGraph.title".
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Extractor evaluates a rule table against documents.
// It holds no per-call state and is safe for concurrent use as long as
// OnError is.
type Extractor struct {
	// Table lists the fields to extract. DefaultTable is used when nil.
	Table Table

	// OnError, if set, receives a *FieldError for every field that failed.
	OnError func(err error)
}

// NewExtractor returns an Extractor for table.
func NewExtractor(table Table) *Extractor {
	return &Extractor{Table: table}
}

// Extract evaluates every field of the table against doc.
//
// When pageURL is not empty, missing top-level url, provider, and icon
// fields are filled from it once all fields have been evaluated, and
// icon_found records whether the document declared an icon itself.
func (e *Extractor) Extract(doc Document, pageURL string) Record {
	table := e.Table
	if table == nil {
		table = DefaultTable()
	}

	ctx := Context{URL: pageURL}
	record := e.extractTable(table, doc, ctx, "")
	if pageURL != "" {
		e.applyFallbacks(record, table, pageURL)
	}
	return record
}

func (e *Extractor) extractTable(table Table, doc Document, ctx Context, prefix string) Record {
	record := make(Record, len(table))
	for _, f := range table {
		path := prefix + f.Name

		switch entry := f.Entry.(type) {
		case *RuleSet:
			v, err := EvaluateRuleSet(entry, doc, ctx)
			if err != nil {
				e.report(path, err)
				continue
			}
			if v != nil {
				record[f.Name] = v
			}
		case Table:
			record[f.Name] = e.extractTable(entry, doc, ctx, path+".")
		default:
			e.report(path, Errorf(EINVALID, "unsupported entry type %T", f.Entry))
		}
	}
	return record
}

func (e *Extractor) applyFallbacks(record Record, table Table, pageURL string) {
	if !record.Has(FieldURL) {
		record[FieldURL] = pageURL
	}

	if !record.Has(FieldProvider) {
		host, err := HostOf(pageURL)
		if err != nil {
			e.report(FieldProvider, err)
		} else {
			record[FieldProvider] = DeriveProvider(host)
		}
	}

	iconKey := FieldIcon
	if _, ok := table.Lookup(FieldIcon); !ok {
		if _, ok := table.Lookup(FieldIconURL); ok {
			iconKey = FieldIconURL
		}
	}
	found := record.Has(iconKey)
	record[FieldIconFound] = found
	if !found {
		record[iconKey] = MakeAbsolute(pageURL, "/favicon.ico")
	}
}

func (e *Extractor) report(field string, err error) {
	if e.OnError != nil {
		e.OnError(&FieldError{Field: field, Err: err})
	}
}

// Extract evaluates table against doc. DefaultTable is used when table is
// nil. Field failures are dropped; use an Extractor with OnError to observe
// them.
func Extract(doc Document, pageURL string, table Table) Record {
	return NewExtractor(table).Extract(doc, pageURL)
}
