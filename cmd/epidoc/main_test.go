package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/epidoc"
	main "github.com/fwojciec/epidoc/cmd/epidoc"
	"github.com/fwojciec/epidoc/etree"
	"github.com/fwojciec/epidoc/fs"
	"github.com/fwojciec/epidoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// newEngineFactory returns a factory of mock engines that parse with etree
// and answer every transform with output, recording bound parameters.
func newEngineFactory(output string, params map[string]string) epidoc.EngineFactory {
	return func(string) (epidoc.Engine, error) {
		log := &epidoc.Log{}
		parser := etree.NewParser(log)
		return &mock.Engine{
			NameFn:    func() string { return "mock" },
			VersionFn: func(context.Context) (string, error) { return "1.0", nil },
			ParseXMLFn: func(text string) epidoc.Document {
				if doc := parser.Parse(text); doc != nil {
					return doc
				}
				return nil
			},
			CompileFn:           func(string) {},
			SetSourceFn:         func(epidoc.Document) {},
			SetParameterFn:      func(name, value string) { params[name] = value },
			SetPropertyFn:       func(string, string) {},
			ClearParametersFn:   func() {},
			ClearPropertiesFn:   func() {},
			TransformToStringFn: func(context.Context) (string, error) { return output, nil },
			ErrorsFn:            func() epidoc.ErrorLog { return log },
		}, nil
	}
}

// setupWorkDir creates a working directory with a stylesheet and one
// EpiDoc file, returning both paths.
func setupWorkDir(t *testing.T, xml string) (workDir, file string) {
	t.Helper()
	workDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "xsl"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, epidoc.DefaultStylesheet), []byte("<xsl:stylesheet/>"), 0o644))
	file = filepath.Join(workDir, "HD006705.xml")
	require.NoError(t, os.WriteFile(file, []byte(xml), 0o644))
	return workDir, file
}

const rendered = "<html><body><div class=\"edition\">ΑΒΓ</div></body></html>"

func TestMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("prints the fragment", func(t *testing.T) {
		t.Parallel()

		params := map[string]string{}
		workDir, file := setupWorkDir(t, "<TEI><ab>ΑΒΓ</ab></TEI>")
		m := &main.Main{Factory: newEngineFactory(rendered, params)}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(testContext(), []string{"-w", workDir, "-P", "edition-type=diplomatic", "convert", file}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "<div class=\"edition\">ΑΒΓ</div>\n", stdout.String())
		assert.Equal(t, "diplomatic", params["edition-type"])
		assert.Equal(t, "panciera", params["leiden-style"])
	})

	t.Run("writes fragments to the output directory", func(t *testing.T) {
		t.Parallel()

		workDir, file := setupWorkDir(t, "<TEI><ab>ΑΒΓ</ab></TEI>")
		outDir := t.TempDir()
		m := &main.Main{Factory: newEngineFactory(rendered, map[string]string{})}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(testContext(), []string{"-w", workDir, "convert", "-o", outDir, file}, stdout, stderr)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		rel, err := fs.SourceToPath(file, ".html")
		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(outDir, rel))
		require.NoError(t, err)
		assert.Equal(t, "<div class=\"edition\">ΑΒΓ</div>\n", string(content))
	})

	t.Run("counts failed writes", func(t *testing.T) {
		t.Parallel()

		workDir, file := setupWorkDir(t, "<TEI><ab>ΑΒΓ</ab></TEI>")
		var written []*epidoc.Fragment
		var gotDir string
		m := &main.Main{
			Factory: newEngineFactory(rendered, map[string]string{}),
			NewWriter: func(dir string) epidoc.FragmentWriter {
				gotDir = dir
				return &mock.FragmentWriter{
					WriteFragmentFn: func(_ context.Context, f *epidoc.Fragment) error {
						written = append(written, f)
						return epidoc.Errorf(epidoc.EINTERNAL, "disk full")
					},
				}
			},
		}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(testContext(), []string{"-w", workDir, "convert", "-f", "markdown", "-o", "out", file}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 files failed")
		assert.Contains(t, stderr.String(), "disk full")
		assert.True(t, filepath.IsAbs(gotDir) || gotDir == "out")
		require.Len(t, written, 1)
		assert.Equal(t, file, written[0].Source)
		assert.Equal(t, ".md", written[0].Extension)
		assert.Contains(t, written[0].Content, "ΑΒΓ")
	})

	t.Run("reports import diagnostics", func(t *testing.T) {
		t.Parallel()

		workDir, file := setupWorkDir(t, `<TEI><ab n=></ab></TEI>`)
		m := &main.Main{Factory: newEngineFactory(rendered, map[string]string{})}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(testContext(), []string{"-w", workDir, "convert", "--html-errors", file}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 files failed")
		assert.Contains(t, stderr.String(), "import error")
		assert.Contains(t, stderr.String(), "<li>")
		assert.Empty(t, stdout.String())
	})

	t.Run("missing stylesheet fails", func(t *testing.T) {
		t.Parallel()

		_, file := setupWorkDir(t, "<TEI><ab>ΑΒΓ</ab></TEI>")
		m := &main.Main{Factory: newEngineFactory(rendered, map[string]string{})}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(testContext(), []string{"-w", t.TempDir(), "convert", file}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "does not exist")
	})
}

func TestMain_Status(t *testing.T) {
	t.Parallel()

	workDir, _ := setupWorkDir(t, "<TEI/>")
	m := &main.Main{Factory: newEngineFactory(rendered, map[string]string{})}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(testContext(), []string{"-w", workDir, "status"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "mock: 1.0")
	assert.Contains(t, stdout.String(), filepath.Join(workDir, epidoc.DefaultStylesheet))
}

func TestMain_Params(t *testing.T) {
	t.Parallel()

	m := &main.Main{Factory: newEngineFactory(rendered, map[string]string{})}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(testContext(), []string{"-P", "leiden-style=london", "params"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "edition-type=interpretive\n")
	assert.Contains(t, stdout.String(), "leiden-style=london\n")
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(testContext(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
