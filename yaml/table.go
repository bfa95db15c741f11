// Package yaml loads pagemeta rule tables from YAML rule files.
//
// A rule file lists fields in evaluation order. Each field either declares
// rules (a leaf) or nested fields (a group):
//
//	fields:
//	  - name: site_name
//	    rules:
//	      - selector: 'meta[property="og:site_name"]'
//	        attr: content
//	      - selector: title
//	        text: true
//	    processors: [absolute_url]
//	    default: provider
//	  - name: openGraph
//	    fields:
//	      - name: type
//	        rules:
//	          - selector: 'meta[property="og:type"]'
//	            attr: content
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagemeta"
	yamlv3 "gopkg.in/yaml.v3"
)

// Scorers maps scorer names usable in rule files to their implementation.
var Scorers = map[string]pagemeta.ScoreFunc{
	"icon_size": pagemeta.IconSizeScorer,
}

// Processors maps processor names usable in rule files to their implementation.
var Processors = map[string]pagemeta.ProcessFunc{
	"absolute_url": pagemeta.AbsoluteURL,
	"keywords":     pagemeta.SplitKeywords,
	"language":     pagemeta.PrimaryLanguage,
}

// Defaults maps default value names usable in rule files to their implementation.
var Defaults = map[string]pagemeta.DefaultFunc{
	"page_url": pagemeta.PageURL,
	"favicon":  pagemeta.Favicon,
	"provider": pagemeta.Provider,
}

type fileConfig struct {
	Fields []fieldConfig `yaml:"fields"`
}

type fieldConfig struct {
	Name       string        `yaml:"name"`
	Rules      []ruleConfig  `yaml:"rules"`
	Scorers    []string      `yaml:"scorers"`
	Processors []string      `yaml:"processors"`
	Default    string        `yaml:"default"`
	Fields     []fieldConfig `yaml:"fields"`
}

type ruleConfig struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr"`
	Text     bool   `yaml:"text"`
}

// LoadTable reads a rule table from the YAML file at path.
func LoadTable(path string) (pagemeta.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	table, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// DecodeTable reads a rule table from r. Unknown keys and unknown scorer,
// processor, or default names are rejected with EINVALID.
func DecodeTable(r io.Reader) (pagemeta.Table, error) {
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty rule file")
		}
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "parse yaml: %v", err)
	}
	if len(fc.Fields) == 0 {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "rule file declares no fields")
	}
	return buildTable(fc.Fields, "")
}

func buildTable(fields []fieldConfig, prefix string) (pagemeta.Table, error) {
	table := make(pagemeta.Table, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, fc := range fields {
		if fc.Name == "" {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field name required")
		}
		path := prefix + fc.Name
		if seen[fc.Name] {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s declared twice", path)
		}
		seen[fc.Name] = true

		entry, err := buildEntry(fc, path)
		if err != nil {
			return nil, err
		}
		table = append(table, pagemeta.Field{Name: fc.Name, Entry: entry})
	}
	return table, nil
}

func buildEntry(fc fieldConfig, path string) (pagemeta.Entry, error) {
	switch {
	case len(fc.Rules) > 0 && len(fc.Fields) > 0:
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: rules and fields are mutually exclusive", path)
	case len(fc.Fields) > 0:
		if len(fc.Scorers) > 0 || len(fc.Processors) > 0 || fc.Default != "" {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: groups cannot have scorers, processors, or a default", path)
		}
		return buildTable(fc.Fields, path+".")
	case len(fc.Rules) == 0:
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: rules or fields required", path)
	}

	rs := &pagemeta.RuleSet{}
	for i, rc := range fc.Rules {
		rule, err := buildRule(rc)
		if err != nil {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s rule %d: %s", path, i, pagemeta.ErrorMessage(err))
		}
		rs.Rules = append(rs.Rules, rule)
	}
	for _, name := range fc.Scorers {
		fn, ok := Scorers[name]
		if !ok {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: unknown scorer %q", path, name)
		}
		rs.Scorers = append(rs.Scorers, fn)
	}
	for _, name := range fc.Processors {
		fn, ok := Processors[name]
		if !ok {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: unknown processor %q", path, name)
		}
		rs.Processors = append(rs.Processors, fn)
	}
	if fc.Default != "" {
		fn, ok := Defaults[fc.Default]
		if !ok {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "field %s: unknown default %q", path, fc.Default)
		}
		rs.Default = fn
	}
	return rs, nil
}

func buildRule(rc ruleConfig) (pagemeta.Rule, error) {
	if rc.Selector == "" {
		return pagemeta.Rule{}, pagemeta.Errorf(pagemeta.EINVALID, "selector required")
	}
	switch {
	case rc.Attr != "" && rc.Text:
		return pagemeta.Rule{}, pagemeta.Errorf(pagemeta.EINVALID, "attr and text are mutually exclusive")
	case rc.Attr != "":
		return pagemeta.Rule{Selector: rc.Selector, Extract: pagemeta.Attr(rc.Attr)}, nil
	case rc.Text:
		return pagemeta.Rule{Selector: rc.Selector, Extract: pagemeta.Text}, nil
	}
	return pagemeta.Rule{}, pagemeta.Errorf(pagemeta.EINVALID, "attr or text required")
}
