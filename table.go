package pagemeta

// Entry is a rule table entry: either a *RuleSet producing a single value or
// a nested Table producing a group of values.
type Entry interface {
	entry()
}

// Field names an entry of a rule table.
type Field struct {
	Name  string
	Entry Entry
}

// Table is an ordered list of fields. Fields are evaluated in the order they
// are declared.
type Table []Field

func (Table) entry() {}

// Lookup returns the entry registered under name.
func (t Table) Lookup(name string) (Entry, bool) {
	for _, f := range t {
		if f.Name == name {
			return f.Entry, true
		}
	}
	return nil, false
}

// With returns a copy of t extended with fields. A field whose name already
// exists replaces the existing entry in place; new names are appended.
// The receiver is not modified.
func (t Table) With(fields ...Field) Table {
	out := make(Table, len(t), len(t)+len(fields))
	copy(out, t)

	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.Name] = i
	}
	for _, f := range fields {
		if i, ok := index[f.Name]; ok {
			out[i] = f
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}
