package exec

import (
	"regexp"
	"strings"

	"github.com/fwojciec/epidoc"
)

// Ensure Saxon implements Dialect at compile time.
var _ Dialect = (*Saxon)(nil)

// Saxon drives Saxon HE through the Java command line (XSLT 3.0). The EpiDoc
// reference stylesheets are written for it.
type Saxon struct {
	// Java is the java executable; defaults to "java".
	Java string

	// Jar is the path to the Saxon HE jar.
	Jar string
}

// NewSaxonEngine creates an Engine that runs the Saxon jar in workingDir.
func NewSaxonEngine(workingDir, jar string) *Engine {
	return NewEngine(&Saxon{Jar: jar}, workingDir)
}

// Name returns "Saxon Processor".
func (s *Saxon) Name() string { return "Saxon Processor" }

// VersionCommand runs the Transform entry point with "-?", which prints the
// product banner.
func (s *Saxon) VersionCommand() (string, []string) {
	return s.java(), []string{"-cp", s.Jar, "net.sf.saxon.Transform", "-?"}
}

// ParseVersion returns the "Saxon-HE ..." banner line.
func (s *Saxon) ParseVersion(stdout, stderr string) string {
	for _, out := range []string{stderr, stdout} {
		for _, line := range strings.Split(out, "\n") {
			if line = strings.TrimSpace(line); strings.HasPrefix(line, "Saxon") {
				return line
			}
		}
	}
	return ""
}

// TransformCommand builds the Saxon invocation. Properties become Saxon
// options ("-name:value"), parameters become "name=value" pairs.
func (s *Saxon) TransformCommand(stylesheet, source string, params, props map[string]string) (string, []string) {
	args := []string{"-jar", s.Jar, "-s:" + source, "-xsl:" + stylesheet}
	for _, name := range sortedKeys(props) {
		args = append(args, "-"+name+":"+props[name])
	}
	for _, name := range sortedKeys(params) {
		args = append(args, name+"="+params[name])
	}
	return s.java(), args
}

// saxonCode matches a diagnostic line such as "  XPST0008  Variable x has
// not been declared" or "XTDE0640: Circular definition".
var saxonCode = regexp.MustCompile(`^(?:Error\s+)?([A-Z]{4}\d{4})[:\s]\s*(.*)$`)

// ParseDiagnostics extracts coded lines from Saxon's stderr. If none carry
// a code, the whole output becomes a single diagnostic.
func (s *Saxon) ParseDiagnostics(stderr string) []epidoc.Diagnostic {
	var diags []epidoc.Diagnostic
	var rest []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := saxonCode.FindStringSubmatch(line); m != nil {
			diags = append(diags, epidoc.Diagnostic{Code: m[1], Message: strings.TrimSpace(m[2])})
			continue
		}
		rest = append(rest, line)
	}
	if len(diags) == 0 && len(rest) > 0 {
		diags = append(diags, epidoc.Diagnostic{Code: epidoc.CodeProcess, Message: strings.Join(rest, " ")})
	}
	return diags
}

func (s *Saxon) java() string {
	if s.Java == "" {
		return "java"
	}
	return s.Java
}
