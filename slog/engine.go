// Package slog provides logging decorators for epidoc services.
package slog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/epidoc"
)

// Ensure LoggingEngine implements epidoc.Engine.
var _ epidoc.Engine = (*LoggingEngine)(nil)

// LoggingEngine wraps an Engine with logging of parses and transforms.
// Binding calls are delegated without logging.
type LoggingEngine struct {
	next   epidoc.Engine
	logger *slog.Logger
}

// NewLoggingEngine creates a new LoggingEngine.
func NewLoggingEngine(next epidoc.Engine, logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{next: next, logger: logger}
}

// Name delegates to the wrapped engine.
func (e *LoggingEngine) Name() string {
	return e.next.Name()
}

// Version delegates to the wrapped engine and logs the result.
func (e *LoggingEngine) Version(ctx context.Context) (version string, err error) {
	defer func() {
		e.logger.Debug("engine version",
			"engine", e.next.Name(),
			"version", version,
			"err", err,
		)
	}()
	return e.next.Version(ctx)
}

// ParseXML logs the input size and digest, whether a document was
// produced and how many diagnostics the parse left in the log.
func (e *LoggingEngine) ParseXML(text string) (doc epidoc.Document) {
	defer func(begin time.Time) {
		e.logger.Info("parse",
			"bytes", len(text),
			"digest", strconv.FormatUint(xxhash.Sum64String(text), 16),
			"ok", doc != nil,
			"diagnostics", e.next.Errors().Count(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ParseXML(text)
}

// Compile delegates to the wrapped engine.
func (e *LoggingEngine) Compile(path string) {
	e.logger.Debug("compile", "stylesheet", path)
	e.next.Compile(path)
}

// SetSource delegates to the wrapped engine.
func (e *LoggingEngine) SetSource(doc epidoc.Document) {
	e.next.SetSource(doc)
}

// SetParameter delegates to the wrapped engine.
func (e *LoggingEngine) SetParameter(name, value string) {
	e.logger.Debug("parameter", "name", name, "value", value)
	e.next.SetParameter(name, value)
}

// SetProperty delegates to the wrapped engine.
func (e *LoggingEngine) SetProperty(name, value string) {
	e.next.SetProperty(name, value)
}

// ClearParameters delegates to the wrapped engine.
func (e *LoggingEngine) ClearParameters() {
	e.next.ClearParameters()
}

// ClearProperties delegates to the wrapped engine.
func (e *LoggingEngine) ClearProperties() {
	e.next.ClearProperties()
}

// TransformToString logs the output size, diagnostics and duration.
func (e *LoggingEngine) TransformToString(ctx context.Context) (out string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("transform",
			"engine", e.next.Name(),
			"bytes", len(out),
			"diagnostics", e.next.Errors().Count(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.TransformToString(ctx)
}

// Errors delegates to the wrapped engine.
func (e *LoggingEngine) Errors() epidoc.ErrorLog {
	return e.next.Errors()
}
