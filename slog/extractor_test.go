package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	pmslog "github.com/fwojciec/pagemeta/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingPageExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("logs url, field count, and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageExtractor{
			ExtractPageFn: func(html string, pageURL string) (pagemeta.Record, error) {
				return pagemeta.Record{"title": "Page Title", "url": pageURL}, nil
			},
		}

		extractor := pmslog.NewLoggingPageExtractor(inner, newDebugLogger(&buf))
		record, err := extractor.ExtractPage("<title>Page Title</title>", "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Page Title", record.String("title"))
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=https://example.com/")
		assert.Contains(t, output, "fields=2")
		assert.Contains(t, output, "bytes=25")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageExtractor{
			ExtractPageFn: func(html string, pageURL string) (pagemeta.Record, error) {
				return nil, errors.New("empty input")
			},
		}

		extractor := pmslog.NewLoggingPageExtractor(inner, newDebugLogger(&buf))
		_, err := extractor.ExtractPage("", "https://example.com/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"empty input\"")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageExtractor{
			ExtractPageFn: func(html string, pageURL string) (pagemeta.Record, error) {
				return pagemeta.Record{}, nil
			},
		}

		extractor := pmslog.NewLoggingPageExtractor(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := extractor.ExtractPage("<html></html>", "")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestFieldErrorLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs field path and code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		onError := pmslog.FieldErrorLogger(newDebugLogger(&buf))

		onError(&pagemeta.FieldError{
			Field: "media.icon",
			Err:   pagemeta.Errorf(pagemeta.ERULE, "invalid selector"),
		})

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "field=media.icon")
		assert.Contains(t, output, "code=rule")
	})

	t.Run("logs plain errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		onError := pmslog.FieldErrorLogger(newDebugLogger(&buf))

		onError(errors.New("boom"))

		assert.Contains(t, buf.String(), "err=boom")
		assert.Contains(t, buf.String(), "code=internal")
	})
}
