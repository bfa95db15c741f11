package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/sync/errgroup"
)

// output is the JSON line written for each input.
type output struct {
	Source   string           `json:"source"`
	Metadata *pagemeta.Record `json:"metadata,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Run extracts metadata from every input and writes one JSON line per input
// in input order.
func (c *CLI) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]output, len(c.Inputs))
	stdin := &onceReader{r: deps.Stdin}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i, input := range c.Inputs {
		g.Go(func() error {
			results[i] = c.extract(deps, stdin, input)
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func (c *CLI) extract(deps *Dependencies, stdin *onceReader, input string) output {
	res := output{Source: input}

	html, pageURL, err := c.read(deps, stdin, input)
	if err != nil {
		res.Error = errorText(err)
		return res
	}

	record, err := deps.Extractor.ExtractPage(html, pageURL)
	if err != nil {
		res.Error = errorText(err)
		return res
	}
	res.Metadata = &record
	return res
}

// read returns the HTML of an input and the page URL to resolve it against.
func (c *CLI) read(deps *Dependencies, stdin *onceReader, input string) (string, string, error) {
	switch {
	case input == "-":
		b, err := stdin.ReadAll()
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), c.URL, nil
	case isURL(input):
		html, err := deps.Fetcher.Fetch(deps.Ctx, input)
		if err != nil {
			return "", "", err
		}
		return html, input, nil
	default:
		b, err := os.ReadFile(input)
		if err != nil {
			return "", "", err
		}
		return string(b), c.URL, nil
	}
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// errorText returns the user-facing message for err.
func errorText(err error) string {
	if pagemeta.ErrorCode(err) != pagemeta.EINTERNAL {
		return pagemeta.ErrorMessage(err)
	}
	return err.Error()
}

// onceReader reads its reader to the end once and replays the result.
type onceReader struct {
	once sync.Once
	r    io.Reader
	b    []byte
	err  error
}

func (o *onceReader) ReadAll() ([]byte, error) {
	o.once.Do(func() {
		if o.r == nil {
			o.err = fmt.Errorf("stdin not available")
			return
		}
		o.b, o.err = io.ReadAll(o.r)
	})
	return o.b, o.err
}
