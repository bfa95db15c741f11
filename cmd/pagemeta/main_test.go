package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/pagemeta/cmd/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html lang="en-US"><head>
<title>Page Title</title>
<meta name="description" content="A test page.">
<link rel="icon" href="/icon.png">
</head></html>`

type line struct {
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata"`
	Error    string         `json:"error"`
}

func decodeLines(t *testing.T, out string) []line {
	t.Helper()

	var lines []line
	for _, raw := range strings.Split(strings.TrimSpace(out), "\n") {
		var l line
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		lines = append(lines, l)
	}
	return lines
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Story: CLI Help and Discovery

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "pagemeta")
	assert.Contains(t, stdout.String(), "--rules")
}

func TestCLI_ShowsHelpWhenNoArgumentsProvided(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "pagemeta")
}

// Story: Extracting metadata from local inputs

func TestCLI_ExtractsFromFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "page.html", page)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--url", "https://www.example.com/post", path}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, path, lines[0].Source)
	assert.Equal(t, "Page Title", lines[0].Metadata["title"])
	assert.Equal(t, "A test page.", lines[0].Metadata["description"])
	assert.Equal(t, "en", lines[0].Metadata["language"])
	assert.Equal(t, "https://www.example.com/icon.png", lines[0].Metadata["icon"])
	assert.Equal(t, "example", lines[0].Metadata["provider"])
	assert.Equal(t, "https://www.example.com/post", lines[0].Metadata["url"])
}

func TestCLI_ExtractsFromStdin(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Stdin = strings.NewReader(page)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-"}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "-", lines[0].Source)
	assert.Equal(t, "Page Title", lines[0].Metadata["title"])
	// Without a page URL relative values stay relative and no fallbacks apply.
	assert.Equal(t, "/icon.png", lines[0].Metadata["icon"])
	assert.NotContains(t, lines[0].Metadata, "provider")
}

func TestCLI_WritesResultsInInputOrder(t *testing.T) {
	t.Parallel()

	first := writeFile(t, "first.html", `<title>First</title>`)
	second := writeFile(t, "second.html", `<title>Second</title>`)
	third := writeFile(t, "third.html", `<title>Third</title>`)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-c", "3", first, second, third}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 3)
	assert.Equal(t, "First", lines[0].Metadata["title"])
	assert.Equal(t, "Second", lines[1].Metadata["title"])
	assert.Equal(t, "Third", lines[2].Metadata["title"])
}

// Story: Failures are reported per input

func TestCLI_ReportsFailedInput(t *testing.T) {
	t.Parallel()

	good := writeFile(t, "good.html", page)
	missing := filepath.Join(t.TempDir(), "missing.html")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{good, missing}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 inputs failed")
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "Page Title", lines[0].Metadata["title"])
	assert.Empty(t, lines[0].Error)
	assert.Equal(t, missing, lines[1].Source)
	assert.NotEmpty(t, lines[1].Error)
	assert.Nil(t, lines[1].Metadata)
}

func TestCLI_ReportsEmptyInput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Stdin = strings.NewReader("   ")
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-"}, &stdout, &stderr)

	require.Error(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "empty HTML input", lines[0].Error)
}

// Story: Fetching URL inputs

func TestCLI_FetchesURLInput(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><meta property="og:title" content="Remote"></head></html>`))
	}))
	defer server.Close()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{server.URL + "/page"}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "Remote", lines[0].Metadata["title"])
	assert.Equal(t, server.URL+"/page", lines[0].Metadata["url"])
	assert.Equal(t, server.URL+"/favicon.ico", lines[0].Metadata["icon"])
	assert.Contains(t, stderr.String(), "msg=fetch")
}

func TestCLI_ReportsFetchFailure(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", errors.New("connection refused")
		},
		CloseFn: func() error { return nil },
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"https://example.com/"}, &stdout, &stderr)

	require.Error(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "connection refused", lines[0].Error)
}

// Story: Custom rule files

const rulesFile = `
fields:
  - name: title
    rules:
      - selector: h1
        text: true
  - name: author
    rules:
      - selector: 'meta[name="author"]'
        attr: content
`

func TestCLI_ExtendsDefaultsWithRuleFile(t *testing.T) {
	t.Parallel()

	rules := writeFile(t, "rules.yaml", rulesFile)
	path := writeFile(t, "page.html", `<html><head>
<title>Head Title</title>
<meta name="description" content="Described.">
<meta name="author" content="Jane">
</head><body><h1>Body Heading</h1></body></html>`)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--rules", rules, path}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "Body Heading", lines[0].Metadata["title"])
	assert.Equal(t, "Jane", lines[0].Metadata["author"])
	assert.Equal(t, "Described.", lines[0].Metadata["description"])
}

func TestCLI_ReplacesDefaultsWithRuleFile(t *testing.T) {
	t.Parallel()

	rules := writeFile(t, "rules.yaml", rulesFile)
	path := writeFile(t, "page.html", `<html><head>
<meta name="description" content="Described.">
</head><body><h1>Body Heading</h1></body></html>`)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--rules", rules, "--replace", path}, &stdout, &stderr)

	require.NoError(t, err)
	lines := decodeLines(t, stdout.String())
	require.Len(t, lines, 1)
	assert.Equal(t, map[string]any{"title": "Body Heading"}, lines[0].Metadata)
}

func TestCLI_RejectsReplaceWithoutRules(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "page.html", page)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--replace", path}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--replace requires --rules")
}

func TestCLI_RejectsInvalidRuleFile(t *testing.T) {
	t.Parallel()

	rules := writeFile(t, "rules.yaml", "fields: []\n")
	path := writeFile(t, "page.html", page)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--rules", rules, path}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
	assert.Empty(t, stdout.String())
}

func TestCLI_LogsFieldErrors(t *testing.T) {
	t.Parallel()

	rules := writeFile(t, "rules.yaml", "fields:\n  - name: broken\n    rules:\n      - selector: 'meta[name='\n        attr: content\n")
	path := writeFile(t, "page.html", page)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--rules", rules, path}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "field=broken")
	lines := decodeLines(t, stdout.String())
	assert.Equal(t, "Page Title", lines[0].Metadata["title"])
}
