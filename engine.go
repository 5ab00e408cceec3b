package epidoc

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
)

// Diagnostic codes appended by the parsers in this module. Engines are free
// to append their own codes (e.g. Saxon's XTDE0640).
const (
	CodeParse           = "SXXP0003"
	CodeContentInProlog = "content-in-prolog"
	CodeProcess         = "process"
)

// prologSignature is the message XML parsers use for stray bytes before the
// XML declaration. Matched when an engine supplies no structured code.
const prologSignature = "content is not allowed in prolog"

// Document is a parsed XML tree owned by an Engine (the XDM value).
type Document interface {
	WriteTo(w io.Writer) (int64, error)
}

// ErrorLog is the diagnostic log a processor appends to between clears.
type ErrorLog interface {
	// Count returns the number of diagnostics in the log.
	Count() int

	// Code returns the code of the i-th diagnostic.
	Code(i int) string

	// Message returns the message of the i-th diagnostic.
	Message(i int) string

	// Clear empties the log.
	Clear()
}

// Engine is the XSLT processing capability the converter is built on.
//
// Diagnostics about the documents and stylesheets it handles are appended
// to Errors() rather than returned; only failures of the engine itself
// (a process that cannot start, a cancelled context) are returned as errors.
// An Engine is not safe for concurrent use.
type Engine interface {
	// Name identifies the engine implementation.
	Name() string

	// Version returns the processor version or an error if the processor
	// is not available.
	Version(ctx context.Context) (string, error)

	// ParseXML parses text into a Document. Returns nil if the text is
	// rejected; the reasons are appended to the error log.
	ParseXML(text string) Document

	// Compile prepares the stylesheet at path for the next transform.
	Compile(path string)

	// SetSource binds doc as the transform input.
	SetSource(doc Document)

	// SetParameter binds a stylesheet parameter by name.
	SetParameter(name, value string)

	// SetProperty sets an engine-specific, transform-scoped property.
	SetProperty(name, value string)

	// ClearParameters removes all bound parameters.
	ClearParameters()

	// ClearProperties removes all transform-scoped properties.
	ClearProperties()

	// TransformToString runs the compiled stylesheet against the source.
	TransformToString(ctx context.Context) (string, error)

	// Errors returns the engine's error log.
	Errors() ErrorLog
}

// EngineFactory creates a fresh Engine rooted at workingDir.
type EngineFactory func(workingDir string) (Engine, error)

// Diagnostic is a single entry of a processor error log.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// String returns the diagnostic as "code: message".
func (d Diagnostic) String() string {
	if d.Code == "" {
		return d.Message
	}
	return d.Code + ": " + d.Message
}

// ErrorReport is an ordered list of diagnostics read from an ErrorLog.
type ErrorReport []Diagnostic

// Drain reads every diagnostic from log and clears it. Two consecutive
// drains never report the same diagnostic twice.
func Drain(log ErrorLog) ErrorReport {
	n := log.Count()
	var report ErrorReport
	for i := 0; i < n; i++ {
		report = append(report, Diagnostic{Code: log.Code(i), Message: log.Message(i)})
	}
	log.Clear()
	return report
}

// String renders one "code: message" line per diagnostic.
func (r ErrorReport) String() string {
	lines := make([]string, len(r))
	for i, d := range r {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// HTML renders the report as an HTML list.
func (r ErrorReport) HTML() string {
	if len(r) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, d := range r {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(d.String()))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

// Contains reports whether any message contains substr, ignoring case.
func (r ErrorReport) Contains(substr string) bool {
	substr = strings.ToLower(substr)
	for _, d := range r {
		if strings.Contains(strings.ToLower(d.Message), substr) {
			return true
		}
	}
	return false
}

// IsProlog reports whether the report describes content before the XML
// prolog. The structured code is preferred; the message text is the
// fallback for engines that only report Saxon-style parser messages.
func (r ErrorReport) IsProlog() bool {
	for _, d := range r {
		if d.Code == CodeContentInProlog {
			return true
		}
	}
	return r.Contains(prologSignature)
}

// Err converts a non-empty report into an application error with the given
// code. Returns nil for an empty report.
func (r ErrorReport) Err(code, format string, args ...interface{}) error {
	if len(r) == 0 {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Report:  r,
	}
}

var _ ErrorLog = (*Log)(nil)

// Log is a slice-backed ErrorLog for engines that collect diagnostics in
// process. The zero value is ready to use.
type Log struct {
	entries []Diagnostic
}

// Append adds a diagnostic to the log.
func (l *Log) Append(code, message string) {
	l.entries = append(l.entries, Diagnostic{Code: code, Message: message})
}

// Count returns the number of diagnostics in the log.
func (l *Log) Count() int { return len(l.entries) }

// Code returns the code of the i-th diagnostic.
func (l *Log) Code(i int) string { return l.entries[i].Code }

// Message returns the message of the i-th diagnostic.
func (l *Log) Message(i int) string { return l.entries[i].Message }

// Clear empties the log.
func (l *Log) Clear() { l.entries = nil }
