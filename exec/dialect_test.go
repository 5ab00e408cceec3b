package exec_test

import (
	"testing"

	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/exec"
	"github.com/stretchr/testify/assert"
)

func TestXsltproc_TransformCommand(t *testing.T) {
	t.Parallel()

	x := &exec.Xsltproc{SearchPath: []string{"/srv/epidoc", "/srv/epidoc/xsl"}}

	name, args := x.TransformCommand("sheet.xsl", "doc.xml",
		map[string]string{"leiden-style": "panciera", "edition-type": "interpretive"},
		map[string]string{"maxdepth": "5000"},
	)

	assert.Equal(t, "xsltproc", name)
	assert.Equal(t, []string{
		"--path", "/srv/epidoc /srv/epidoc/xsl",
		"--maxdepth", "5000",
		"--stringparam", "edition-type", "interpretive",
		"--stringparam", "leiden-style", "panciera",
		"sheet.xsl", "doc.xml",
	}, args)
}

func TestXsltproc_ParseDiagnostics(t *testing.T) {
	t.Parallel()

	x := &exec.Xsltproc{}
	stderr := "compilation error: file sheet.xsl line 3 element template\n" +
		"xsl:template : could not compile select expression '//'\n" +
		"\n" +
		"runtime error: file sheet.xsl line 9 element value-of\n" +
		"Undefined variable\n"

	diags := x.ParseDiagnostics(stderr)

	assert.Equal(t, []epidoc.Diagnostic{
		{Code: "compilation", Message: "compilation error: file sheet.xsl line 3 element template xsl:template : could not compile select expression '//'"},
		{Code: "runtime", Message: "runtime error: file sheet.xsl line 9 element value-of Undefined variable"},
	}, diags)
}

func TestXsltproc_ParseDiagnostics_Unstructured(t *testing.T) {
	t.Parallel()

	diags := (&exec.Xsltproc{}).ParseDiagnostics("cannot parse sheet.xsl\nsecond line\n")

	assert.Equal(t, []epidoc.Diagnostic{{Code: "xsltproc", Message: "cannot parse sheet.xsl second line"}}, diags)
}

func TestSaxon_TransformCommand(t *testing.T) {
	t.Parallel()

	s := &exec.Saxon{Jar: "/opt/saxon/saxon-he.jar"}

	name, args := s.TransformCommand("xsl/start-edition.xsl", "/tmp/doc.xml",
		map[string]string{"edition-type": "diplomatic"},
		map[string]string{"dtd": "off"},
	)

	assert.Equal(t, "java", name)
	assert.Equal(t, []string{
		"-jar", "/opt/saxon/saxon-he.jar",
		"-s:/tmp/doc.xml", "-xsl:xsl/start-edition.xsl",
		"-dtd:off",
		"edition-type=diplomatic",
	}, args)
}

func TestSaxon_ParseDiagnostics(t *testing.T) {
	t.Parallel()

	s := &exec.Saxon{}

	t.Run("extracts coded lines", func(t *testing.T) {
		t.Parallel()

		stderr := "Error at char 5 in expression in xsl:value-of/@select on line 10 column 42 of start-edition.xsl:\n" +
			"  XPST0008  Variable x has not been declared (or its declaration is not in scope)\n" +
			"Errors were reported during stylesheet compilation\n"

		diags := s.ParseDiagnostics(stderr)

		assert.Equal(t, []epidoc.Diagnostic{
			{Code: "XPST0008", Message: "Variable x has not been declared (or its declaration is not in scope)"},
		}, diags)
	})

	t.Run("colon separated codes", func(t *testing.T) {
		t.Parallel()

		diags := s.ParseDiagnostics("Error XTDE0640: Circular definition of variable\n")

		assert.Equal(t, []epidoc.Diagnostic{{Code: "XTDE0640", Message: "Circular definition of variable"}}, diags)
	})

	t.Run("falls back to the whole output", func(t *testing.T) {
		t.Parallel()

		diags := s.ParseDiagnostics("Error: Unable to access jarfile /opt/saxon/saxon-he.jar\n")

		assert.Equal(t, []epidoc.Diagnostic{{Code: epidoc.CodeProcess, Message: "Error: Unable to access jarfile /opt/saxon/saxon-he.jar"}}, diags)
	})
}
