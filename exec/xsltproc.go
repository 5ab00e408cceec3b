package exec

import (
	"slices"
	"strings"

	"github.com/fwojciec/epidoc"
)

// Ensure Xsltproc implements Dialect at compile time.
var _ Dialect = (*Xsltproc)(nil)

// Xsltproc drives libxslt's xsltproc (XSLT 1.0).
type Xsltproc struct {
	// Command is the executable; defaults to "xsltproc".
	Command string

	// SearchPath lists directories used to resolve DTDs and included files.
	SearchPath []string
}

// NewXsltprocEngine creates an Engine that runs xsltproc in workingDir.
func NewXsltprocEngine(workingDir string, searchPath ...string) *Engine {
	return NewEngine(&Xsltproc{SearchPath: searchPath}, workingDir)
}

// Name returns "xsltproc".
func (x *Xsltproc) Name() string { return "xsltproc" }

// VersionCommand returns "xsltproc --version".
func (x *Xsltproc) VersionCommand() (string, []string) {
	return x.command(), []string{"--version"}
}

// ParseVersion returns the first line of the version banner, e.g.
// "Using libxml 20914, libxslt 10139 and libexslt 823".
func (x *Xsltproc) ParseVersion(stdout, stderr string) string {
	if v := firstLine(stdout); v != "" {
		return v
	}
	return firstLine(stderr)
}

// TransformCommand builds the xsltproc invocation. Parameters are passed
// with --stringparam so values are never evaluated as XPath. A property
// with value "true" becomes a bare flag, any other value a flag argument.
func (x *Xsltproc) TransformCommand(stylesheet, source string, params, props map[string]string) (string, []string) {
	var args []string
	if len(x.SearchPath) > 0 {
		args = append(args, "--path", strings.Join(x.SearchPath, " "))
	}
	for _, name := range sortedKeys(props) {
		if v := props[name]; v == "true" {
			args = append(args, "--"+name)
		} else {
			args = append(args, "--"+name, v)
		}
	}
	for _, name := range sortedKeys(params) {
		args = append(args, "--stringparam", name, params[name])
	}
	args = append(args, stylesheet, source)
	return x.command(), args
}

// ParseDiagnostics groups xsltproc's stderr into diagnostics. A line starting
// with "compilation error:" or "runtime error:" opens a diagnostic and the
// lines after it up to the next opener are its message.
func (x *Xsltproc) ParseDiagnostics(stderr string) []epidoc.Diagnostic {
	var diags []epidoc.Diagnostic
	cur := -1
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		code := "xsltproc"
		switch {
		case strings.HasPrefix(line, "compilation error:"):
			code = "compilation"
		case strings.HasPrefix(line, "runtime error:"):
			code = "runtime"
		}
		if code != "xsltproc" || cur < 0 {
			diags = append(diags, epidoc.Diagnostic{Code: code, Message: line})
			cur = len(diags) - 1
			continue
		}
		diags[cur].Message += " " + line
	}
	return diags
}

func (x *Xsltproc) command() string {
	if x.Command == "" {
		return "xsltproc"
	}
	return x.Command
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
