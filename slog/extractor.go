package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/epidoc"
)

// Ensure LoggingExtractor implements epidoc.Extractor.
var _ epidoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   epidoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next epidoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(rawHTML string, full bool) (out string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"full", full,
			"in", len(rawHTML),
			"out", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML, full)
}
