// Package convert provides the EpiDoc conversion session. It coordinates
// sanitizing, parsing with a bounded repair retry, transforming, and
// extracting the body fragment of the result.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	beevik "github.com/beevik/etree"
	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/etree"
	"github.com/google/uuid"
)

// Session converts one EpiDoc document at a time. It owns exactly one
// engine and one parsed document.
//
// A Session must not be used from multiple goroutines. Create one Session
// per concurrent conversion so engine error logs are never shared.
type Session struct {
	// ID identifies the session in logs.
	ID string

	// Engine runs parsing and transforms. Nil when the engine was
	// unavailable and Config.SkipIfUnavailable was set.
	Engine epidoc.Engine

	// Extractor turns transform output into the result.
	Extractor epidoc.Extractor

	// Config holds stylesheet location and render options.
	Config epidoc.Config

	// Logger receives session events. Nil discards them.
	Logger *slog.Logger

	factory    epidoc.EngineFactory
	doc        epidoc.Document
	unavailErr error
}

// NewSession creates a Session around an existing engine.
func NewSession(engine epidoc.Engine, extractor epidoc.Extractor, cfg epidoc.Config) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Engine:    engine,
		Extractor: extractor,
		Config:    cfg,
	}
}

// Open creates an engine with factory and checks that it is available.
// An unavailable engine fails with EUNAVAILABLE unless
// cfg.SkipIfUnavailable is set, in which case the Session is returned
// without an engine and Status reports the failure.
func Open(ctx context.Context, cfg epidoc.Config, factory epidoc.EngineFactory, extractor epidoc.Extractor) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := NewSession(nil, extractor, cfg)
	s.factory = factory

	if err := s.Reset(ctx); err != nil {
		if !cfg.SkipIfUnavailable {
			return nil, err
		}
		s.unavailErr = err
	}
	return s, nil
}

// Reset replaces the engine with a fresh one from the session's factory,
// discarding its error log, parameters and loaded document.
func (s *Session) Reset(ctx context.Context) error {
	if s.factory == nil {
		return epidoc.Errorf(epidoc.EINVALID, "session has no engine factory")
	}

	s.Engine = nil
	s.doc = nil

	engine, err := s.factory(s.Config.WorkingDir)
	if err != nil {
		return unavailable(err)
	}
	if _, err := engine.Version(ctx); err != nil {
		return unavailable(err)
	}

	s.Engine = engine
	s.unavailErr = nil
	return nil
}

// Status returns the engine name and version, e.g.
// "Saxon Processor: Saxon-HE 12.4J from Saxonica".
func (s *Session) Status(ctx context.Context) (string, error) {
	if s.Engine == nil {
		if s.unavailErr != nil {
			return "", s.unavailErr
		}
		return "", epidoc.Errorf(epidoc.EUNAVAILABLE, "XSLT processor not available")
	}
	version, err := s.Engine.Version(ctx)
	if err != nil {
		return "", unavailable(err)
	}
	return s.Engine.Name() + ": " + version, nil
}

// Loaded reports whether a document is ready to transform.
func (s *Session) Loaded() bool {
	return s.doc != nil
}

// ImportString loads an EpiDoc string. It is Load under its original name.
func (s *Session) ImportString(raw string) error {
	return s.Load(raw)
}

// ImportDocument serializes an already parsed EpiDoc tree and loads it.
func (s *Session) ImportDocument(doc *beevik.Document) error {
	raw, err := etree.Serialize(doc)
	if err != nil {
		return err
	}
	return s.Load(raw)
}

// Load sanitizes raw and parses it into the session's document.
//
// If the parser rejects content before the XML prolog, the input is
// reduced to printable ASCII with StrictFilter and parsed once more. The
// second attempt is final. Any other parse error fails immediately with
// EIMPORT carrying the parser diagnostics.
func (s *Session) Load(raw string) error {
	if s.Engine == nil {
		return s.noEngine()
	}

	clean := epidoc.Sanitize(raw)

	report := s.parse(clean)
	if report.IsProlog() {
		s.logger().Warn("content before prolog, retrying with strict filter",
			"session", s.ID,
			"report", report.String(),
		)
		s.Engine.Errors().Clear()
		report = s.parse(epidoc.StrictFilter(clean))
	}

	if len(report) > 0 {
		s.doc = nil
		return report.Err(epidoc.EIMPORT, "import error")
	}
	if s.doc == nil {
		return epidoc.Errorf(epidoc.EIMPORT, "import error: parser returned no document")
	}
	return nil
}

// parse replaces the session document with the parse result and drains the
// diagnostics the attempt produced.
func (s *Session) parse(text string) epidoc.ErrorReport {
	s.doc = nil
	s.doc = s.Engine.ParseXML(text)
	return epidoc.Drain(s.Engine.Errors())
}

// Transform runs the configured stylesheet over the loaded document and
// returns the raw engine output.
//
// A missing stylesheet fails with ENOSTYLESHEET and a missing document with
// ENODOCUMENT, both before the engine is touched. Past those checks, the
// engine's error log, parameters and properties are cleared on every return
// path. Diagnostics reported by the engine fail with ETRANSFORM.
func (s *Session) Transform(ctx context.Context) (result string, err error) {
	if s.Engine == nil {
		return "", s.noEngine()
	}

	path := s.Config.StylesheetPath()
	if _, statErr := os.Stat(path); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return "", epidoc.Errorf(epidoc.ENOSTYLESHEET, "file >>%s<< does not exist", s.Config.Stylesheet)
		}
		return "", &epidoc.Error{Code: epidoc.ENOSTYLESHEET, Message: "stylesheet not readable", Err: statErr}
	}

	if s.doc == nil {
		return "", epidoc.Errorf(epidoc.ENODOCUMENT, "import data to convert")
	}

	if s.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.Timeout)
		defer cancel()
	}

	var report epidoc.ErrorReport
	defer func() {
		report = append(report, epidoc.Drain(s.Engine.Errors())...)
		s.Engine.ClearParameters()
		s.Engine.ClearProperties()
		if err == nil {
			if rerr := report.Err(epidoc.ETRANSFORM, "processor found some XML errors"); rerr != nil {
				result, err = "", rerr
			}
			return
		}
		var e *epidoc.Error
		if errors.As(err, &e) && e.Report == nil {
			e.Report = report
		}
	}()

	s.Engine.SetSource(s.doc)
	s.Engine.Compile(path)
	for _, name := range s.Config.Options.Names() {
		s.Engine.SetParameter(name, s.Config.Options[name])
	}
	for _, name := range slices.Sorted(maps.Keys(s.Config.Properties)) {
		s.Engine.SetProperty(name, s.Config.Properties[name])
	}

	out, runErr := s.Engine.TransformToString(ctx)
	if runErr != nil {
		return "", &epidoc.Error{Code: epidoc.ETRANSFORM, Message: "transform failed", Err: runErr}
	}
	return out, nil
}

// Convert transforms the loaded document and extracts the result: the body
// fragment, or the whole trimmed document if full is set. A failed
// conversion never returns partial output.
func (s *Session) Convert(ctx context.Context, full bool) (string, error) {
	raw, err := s.Transform(ctx)
	if err != nil {
		return "", err
	}
	out, err := s.Extractor.Extract(raw, full)
	if err != nil {
		return "", fmt.Errorf("extracting result: %w", err)
	}
	return out, nil
}

func (s *Session) noEngine() error {
	if s.unavailErr != nil {
		return s.unavailErr
	}
	return epidoc.Errorf(epidoc.EUNAVAILABLE, "XSLT processor not available")
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// unavailable converts an engine construction or version error into
// EUNAVAILABLE, keeping application errors that already carry that code.
func unavailable(err error) error {
	if epidoc.ErrorCode(err) == epidoc.EUNAVAILABLE {
		return err
	}
	return &epidoc.Error{Code: epidoc.EUNAVAILABLE, Message: "XSLT processor not available", Err: err}
}
