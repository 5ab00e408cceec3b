package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/etree"
)

// Ensure Engine implements epidoc.Engine at compile time.
var _ epidoc.Engine = (*Engine)(nil)

// Dialect describes how to drive a particular XSLT command-line processor.
type Dialect interface {
	// Name identifies the processor.
	Name() string

	// VersionCommand returns the command that prints the processor version.
	VersionCommand() (name string, args []string)

	// ParseVersion extracts the version from the version command output.
	ParseVersion(stdout, stderr string) string

	// TransformCommand returns the command that applies stylesheet to source.
	TransformCommand(stylesheet, source string, params, props map[string]string) (name string, args []string)

	// ParseDiagnostics turns the stderr of a failed transform into diagnostics.
	ParseDiagnostics(stderr string) []epidoc.Diagnostic
}

// Engine runs transforms by invoking a command-line processor. Documents are
// parsed in process with etree and handed to the processor as temp files.
type Engine struct {
	Runner     Runner
	Dialect    Dialect
	WorkingDir string

	log        epidoc.Log
	parser     *etree.Parser
	source     epidoc.Document
	stylesheet string
	params     map[string]string
	props      map[string]string
}

// NewEngine creates an Engine for dialect with a real command runner.
func NewEngine(dialect Dialect, workingDir string) *Engine {
	e := &Engine{
		Runner:     &ExecRunner{},
		Dialect:    dialect,
		WorkingDir: workingDir,
		params:     make(map[string]string),
		props:      make(map[string]string),
	}
	e.parser = etree.NewParser(&e.log)
	return e
}

// Name returns the dialect name.
func (e *Engine) Name() string {
	return e.Dialect.Name()
}

// Version runs the processor's version command. Returns EUNAVAILABLE if the
// processor cannot be run.
func (e *Engine) Version(ctx context.Context) (string, error) {
	name, args := e.Dialect.VersionCommand()
	stdout, stderr, err := e.Runner.Run(ctx, e.WorkingDir, name, args...)
	if err != nil {
		var exit exitCoder
		if !errors.As(err, &exit) {
			return "", &epidoc.Error{
				Code:    epidoc.EUNAVAILABLE,
				Message: fmt.Sprintf("%s processor not available", e.Dialect.Name()),
				Err:     err,
			}
		}
	}
	version := e.Dialect.ParseVersion(stdout, stderr)
	if version == "" {
		return "", epidoc.Errorf(epidoc.EUNAVAILABLE, "%s processor did not report a version", e.Dialect.Name())
	}
	return version, nil
}

// ParseXML parses text with etree.
func (e *Engine) ParseXML(text string) epidoc.Document {
	doc := e.parser.Parse(text)
	if doc == nil {
		return nil
	}
	return doc
}

// Compile records the stylesheet for the next transform. The processor
// compiles it when the transform runs.
func (e *Engine) Compile(path string) {
	if _, err := os.Stat(path); err != nil {
		e.log.Append(epidoc.CodeProcess, fmt.Sprintf("cannot read stylesheet %s: %v", path, err))
		return
	}
	e.stylesheet = path
}

// SetSource binds doc as the transform input.
func (e *Engine) SetSource(doc epidoc.Document) {
	e.source = doc
}

// SetParameter binds a stylesheet parameter.
func (e *Engine) SetParameter(name, value string) {
	e.params[name] = value
}

// SetProperty sets a processor option.
func (e *Engine) SetProperty(name, value string) {
	e.props[name] = value
}

// ClearParameters removes all bound parameters.
func (e *Engine) ClearParameters() {
	clear(e.params)
}

// ClearProperties removes all processor options.
func (e *Engine) ClearProperties() {
	clear(e.props)
}

// Errors returns the engine's error log.
func (e *Engine) Errors() epidoc.ErrorLog {
	return &e.log
}

// TransformToString runs the processor on the bound source and stylesheet.
// A non-zero exit status is reported through the error log; only a
// processor that could not run at all returns an error.
func (e *Engine) TransformToString(ctx context.Context) (string, error) {
	if e.source == nil {
		e.log.Append(epidoc.CodeProcess, "no source document bound")
		return "", nil
	}
	if e.stylesheet == "" {
		e.log.Append(epidoc.CodeProcess, "no stylesheet compiled")
		return "", nil
	}

	sourcePath, cleanup, err := writeTempXML(e.source)
	if err != nil {
		return "", err
	}
	defer cleanup()

	name, args := e.Dialect.TransformCommand(e.stylesheet, sourcePath, e.params, e.props)
	stdout, stderr, err := e.Runner.Run(ctx, e.WorkingDir, name, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("running %s: %w", name, ctxErr)
		}
		var exit exitCoder
		if !errors.As(err, &exit) {
			return "", fmt.Errorf("running %s: %w", name, err)
		}
		diags := e.Dialect.ParseDiagnostics(stderr)
		if len(diags) == 0 {
			diags = []epidoc.Diagnostic{{
				Code:    epidoc.CodeProcess,
				Message: fmt.Sprintf("%s exited with status %d", e.Dialect.Name(), exit.ExitCode()),
			}}
		}
		for _, d := range diags {
			e.log.Append(d.Code, d.Message)
		}
		return "", nil
	}

	return stdout, nil
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
