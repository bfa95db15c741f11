package slog

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Ensure LoggingPageExtractor implements pagemeta.PageExtractor.
var _ pagemeta.PageExtractor = (*LoggingPageExtractor)(nil)

// LoggingPageExtractor wraps a PageExtractor with debug logging.
type LoggingPageExtractor struct {
	next   pagemeta.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next pagemeta.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// ExtractPage delegates to the wrapped extractor and logs the operation.
func (e *LoggingPageExtractor) ExtractPage(html string, pageURL string) (record pagemeta.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"url", pageURL,
			"bytes", len(html),
			"fields", len(record),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPage(html, pageURL)
}

// FieldErrorLogger returns an error handler for pagemeta.Extractor.OnError
// that logs each failed field as a warning.
func FieldErrorLogger(logger *slog.Logger) func(err error) {
	return func(err error) {
		field := ""
		var fieldErr *pagemeta.FieldError
		if errors.As(err, &fieldErr) {
			field = fieldErr.Field
			err = fieldErr.Err
		}
		logger.Warn("field evaluation failed",
			"field", field,
			"code", pagemeta.ErrorCode(err),
			"err", err,
		)
	}
}
